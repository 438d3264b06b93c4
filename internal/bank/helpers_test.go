package bank

import (
	"io"
	"log/slog"
	"strconv"
	"testing"

	"cko-gateway/internal/domain"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func mustPayment(t *testing.T, card string, month, year int, currency string, amount int64, cvv string) domain.Payment {
	t.Helper()

	result := domain.NewPayment(&card, &month, &year, &currency, &amount, &cvv)
	require.True(t, result.IsSuccess(), "fixture payment invalid: %v", result.Errors())
	return result.Value()
}
