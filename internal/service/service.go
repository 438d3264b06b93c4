package service

import (
	"context"
	"errors"
	"log/slog"

	"cko-gateway/internal/bank"
	"cko-gateway/internal/domain"
	"cko-gateway/pkg/e"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go -package=mocks

var (
	processedPaymentsCounter *prometheus.CounterVec
	paymentFailuresCounter   *prometheus.CounterVec
)

func init() {
	processedPaymentsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Total number of payments that completed a bank round-trip, by status",
	}, []string{"status"})

	paymentFailuresCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_failures_total",
		Help: "Total number of payment attempts that failed before a record was stored, by kind",
	}, []string{"kind"})
}

// PaymentStore records completed payment outcomes by id. Get returns
// e.ErrNotFound for an unknown id.
type PaymentStore interface {
	Add(ctx context.Context, record domain.PaymentRecord) error
	Get(ctx context.Context, id string) (domain.PaymentRecord, error)
}

// KeyStore is the set of idempotency keys that completed a successful
// submission. Keys are opaque and case-sensitive; none are ever removed.
type KeyStore interface {
	Contains(ctx context.Context, key string) (bool, error)
	Add(ctx context.Context, key string) error
}

type IDGenerator interface {
	Generate() string
}

// Publisher emits processed-payment events. Optional; publishing
// failures never fail the payment.
type Publisher interface {
	PublishProcessed(ctx context.Context, record domain.PaymentRecord) error
}

// IdempotencyConflictError reports a client key that already completed,
// or is concurrently completing, a submission.
type IdempotencyConflictError struct {
	Key string
}

func (err *IdempotencyConflictError) Error() string {
	return "idempotency key already in use"
}

// Service orchestrates the payment pipeline: idempotency guard, bank
// authorization, record persistence.
type Service struct {
	store  PaymentStore
	guard  *Guard
	bank   bank.Client
	ids    IDGenerator
	events Publisher
	logger *slog.Logger
}

func NewService(logger *slog.Logger, store PaymentStore, guard *Guard, bankClient bank.Client, ids IDGenerator, events Publisher) *Service {
	return &Service{
		store:  store,
		guard:  guard,
		bank:   bankClient,
		ids:    ids,
		events: events,
		logger: logger,
	}
}

// ProcessPayment submits a validated payment to the bank at most once
// per idempotency key and records the outcome. An empty key means the
// client opted out of deduplication. The guard is consulted strictly
// before the bank call and the key registered strictly after the record
// is persisted; a bank failure leaves the key free for a retry.
func (s *Service) ProcessPayment(ctx context.Context, payment domain.Payment, idempotencyKey string) (domain.PaymentRecord, error) {
	if idempotencyKey != "" {
		if err := s.guard.Acquire(ctx, idempotencyKey); err != nil {
			s.logger.Warn("payment rejected by idempotency guard", slog.String("idempotency_key", idempotencyKey))
			paymentFailuresCounter.WithLabelValues(failureKind(err)).Inc()
			return domain.PaymentRecord{}, err
		}
	}

	record, err := s.submit(ctx, payment)
	if err != nil {
		if idempotencyKey != "" {
			s.guard.Release(idempotencyKey)
		}
		return domain.PaymentRecord{}, err
	}

	if idempotencyKey != "" {
		if err := s.guard.Commit(ctx, idempotencyKey); err != nil {
			// The record is already stored; a failed key write must not
			// fail the payment.
			s.logger.Error("failed to register idempotency key",
				slog.String("idempotency_key", idempotencyKey),
				slog.String("payment_id", record.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return record, nil
}

func (s *Service) submit(ctx context.Context, payment domain.Payment) (domain.PaymentRecord, error) {
	id := s.ids.Generate()

	resp, err := s.bank.MakePayment(ctx, bank.RequestFromPayment(payment))
	if err != nil {
		s.logger.Error("bank call failed", slog.String("payment_id", id), slog.String("error", err.Error()))
		paymentFailuresCounter.WithLabelValues(failureKind(err)).Inc()
		return domain.PaymentRecord{}, e.Wrap("service.ProcessPayment", err)
	}

	status := domain.StatusDeclined
	if resp.Authorized {
		status = domain.StatusApproved
	}

	record := domain.NewPaymentRecord(payment, id, status)
	if err := s.store.Add(ctx, record); err != nil {
		s.logger.Error("failed to store payment record", slog.String("payment_id", id), slog.String("error", err.Error()))
		paymentFailuresCounter.WithLabelValues("store_failure").Inc()
		return domain.PaymentRecord{}, e.Wrap("service.ProcessPayment", err)
	}

	processedPaymentsCounter.WithLabelValues(string(status)).Inc()
	s.logger.Info("payment processed",
		slog.String("payment_id", id),
		slog.String("status", string(status)),
		slog.Any("payment", payment),
	)

	if s.events != nil {
		if err := s.events.PublishProcessed(ctx, record); err != nil {
			s.logger.Error("failed to publish payment event", slog.String("payment_id", id), slog.String("error", err.Error()))
		}
	}

	return record, nil
}

func (s *Service) GetPaymentByID(ctx context.Context, id string) (domain.PaymentRecord, error) {
	record, err := s.store.Get(ctx, id)
	if err != nil {
		return domain.PaymentRecord{}, e.Wrap("service.GetPaymentByID", err)
	}
	return record, nil
}

func failureKind(err error) string {
	var conflict *IdempotencyConflictError
	if errors.As(err, &conflict) {
		return "idempotency_conflict"
	}
	var bankErr *bank.Error
	if errors.As(err, &bankErr) {
		return string(bankErr.Kind)
	}
	return "internal"
}
