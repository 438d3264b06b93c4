package pg

import (
	"context"
	"errors"
	"log/slog"

	"cko-gateway/internal/domain"
	"cko-gateway/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createPaymentsTable = `
CREATE TABLE IF NOT EXISTS payments (
	id                    TEXT PRIMARY KEY,
	status                TEXT NOT NULL,
	last_four_card_digits TEXT NOT NULL,
	expiry_month          INT  NOT NULL,
	expiry_year           INT  NOT NULL,
	currency              TEXT NOT NULL,
	amount                BIGINT NOT NULL
)`

// Postgres is the durable PaymentStore. Only the masked card tail is
// ever written; the schema has no column for a full PAN or CVV.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(ctx context.Context, logger *slog.Logger, url string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, e.Wrap("pg.NewPostgres", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, e.Wrap("pg.NewPostgres.ping", err)
	}

	if _, err := pool.Exec(ctx, createPaymentsTable); err != nil {
		pool.Close()
		return nil, e.Wrap("pg.NewPostgres.migrate", err)
	}

	logger.Info("connected to postgres")

	return &Postgres{pool: pool, logger: logger}, nil
}

func (p *Postgres) Add(ctx context.Context, record domain.PaymentRecord) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO payments (id, status, last_four_card_digits, expiry_month, expiry_year, currency, amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.ID, string(record.Status), record.LastFourCardDigits,
		record.ExpiryMonth, record.ExpiryYear, string(record.Currency), record.Amount,
	)
	if err != nil {
		return e.Wrap("pg.Add", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, id string) (domain.PaymentRecord, error) {
	var record domain.PaymentRecord
	err := p.pool.QueryRow(ctx,
		`SELECT id, status, last_four_card_digits, expiry_month, expiry_year, currency, amount
		 FROM payments WHERE id = $1`, id,
	).Scan(&record.ID, &record.Status, &record.LastFourCardDigits,
		&record.ExpiryMonth, &record.ExpiryYear, &record.Currency, &record.Amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PaymentRecord{}, e.ErrNotFound
		}
		return domain.PaymentRecord{}, e.Wrap("pg.Get", err)
	}
	return record, nil
}

func (p *Postgres) CloseConnection() {
	p.pool.Close()
}
