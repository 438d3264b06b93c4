package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fixedNow keeps the expiry checks deterministic: June 2025.
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func validArgs() (cardNumber *string, month, year *int, currency *string, amount *int64, cvv *string) {
	return strPtr("4242424242424242"), intPtr(12), intPtr(2026), strPtr("GBP"), int64Ptr(1000), strPtr("123")
}

func TestNewPaymentSuccess(t *testing.T) {
	card, month, year, currency, amount, cvv := validArgs()

	result := newPaymentAt(fixedNow, card, month, year, currency, amount, cvv)

	assert.True(t, result.IsSuccess())
	payment := result.Value()
	assert.Equal(t, "4242424242424242", payment.CardNumber())
	assert.Equal(t, 12, payment.ExpiryMonth())
	assert.Equal(t, 2026, payment.ExpiryYear())
	assert.Equal(t, GBP, payment.Currency())
	assert.Equal(t, int64(1000), payment.AmountMinorUnits())
	assert.Equal(t, "123", payment.CVV())
}

func TestNewPaymentValidation(t *testing.T) {
	testCases := []struct {
		name           string
		mutate         func(card **string, month, year **int, currency **string, amount **int64, cvv **string)
		expectedErrors []string
	}{
		{
			name: "missing card number",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*card = nil
			},
			expectedErrors: []string{"Card number is required"},
		},
		{
			name: "card number too short",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*card = strPtr("4242424242424")
			},
			expectedErrors: []string{"Card number must be between 14-19 digits"},
		},
		{
			name: "card number too long",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*card = strPtr("42424242424242424242")
			},
			expectedErrors: []string{"Card number must be between 14-19 digits"},
		},
		{
			name: "card number with letters",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*card = strPtr("4242abcd42424242")
			},
			expectedErrors: []string{"Card number must be between 14-19 digits"},
		},
		{
			name: "card number with separators",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*card = strPtr("4242 4242 4242 4242")
			},
			expectedErrors: []string{"Card number must be between 14-19 digits"},
		},
		{
			name: "missing expiry month",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*month = nil
			},
			expectedErrors: []string{"Expiry month is required"},
		},
		{
			name: "month out of range produces range and date errors",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*month = intPtr(13)
			},
			expectedErrors: []string{
				"Expiry month must be between 1 and 12",
				"Invalid expiry date",
			},
		},
		{
			name: "past year produces both expiry errors",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*year = intPtr(2024)
			},
			expectedErrors: []string{
				"Expiry year must be in the future",
				"Card expiry date must be in the future",
			},
		},
		{
			name: "past month of the current year passes the coarse year check",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*month = intPtr(3)
				*year = intPtr(2025)
			},
			expectedErrors: []string{"Card expiry date must be in the future"},
		},
		{
			name: "current month is not in the future",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*month = intPtr(6)
				*year = intPtr(2025)
			},
			expectedErrors: []string{"Card expiry date must be in the future"},
		},
		{
			name: "missing cvv",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*cvv = nil
			},
			expectedErrors: []string{"CVV is required"},
		},
		{
			name: "cvv too short",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*cvv = strPtr("12")
			},
			expectedErrors: []string{"Invalid CVV"},
		},
		{
			name: "cvv with letters",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*cvv = strPtr("12a")
			},
			expectedErrors: []string{"Invalid CVV"},
		},
		{
			name: "money errors are flattened into the same list",
			mutate: func(card **string, month, year **int, currency **string, amount **int64, cvv **string) {
				*amount = int64Ptr(-5)
				*currency = strPtr("JPY")
			},
			expectedErrors: []string{
				"Amount in minor units must be positive",
				"Invalid currency code. Must be one of: USD, GBP, EUR",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			card, month, year, currency, amount, cvv := validArgs()
			testCase.mutate(&card, &month, &year, &currency, &amount, &cvv)

			result := newPaymentAt(fixedNow, card, month, year, currency, amount, cvv)

			assert.True(t, result.IsFailure())
			assert.Equal(t, testCase.expectedErrors, result.Errors())
		})
	}
}

// Failing checks report in a fixed order: card, month, year, date,
// money, cvv.
func TestNewPaymentErrorOrdering(t *testing.T) {
	result := newPaymentAt(fixedNow, nil, intPtr(13), intPtr(2024), strPtr("JPY"), nil, strPtr("1"))

	assert.Equal(t, []string{
		"Card number is required",
		"Expiry month must be between 1 and 12",
		"Expiry year must be in the future",
		"Invalid expiry date",
		"Amount in minor units is required",
		"Invalid currency code. Must be one of: USD, GBP, EUR",
		"Invalid CVV",
	}, result.Errors())
}

func TestPaymentMasking(t *testing.T) {
	card, month, year, currency, amount, cvv := validArgs()
	payment := newPaymentAt(fixedNow, card, month, year, currency, amount, cvv).Value()

	assert.Equal(t, "4242", payment.LastFourDigits())
	assert.Equal(t, "************4242", payment.MaskedCardNumber())
	assert.Equal(t, "***", payment.MaskedCVV())

	rendered := fmt.Sprintf("%v", payment)
	assert.NotContains(t, rendered, "4242424242424242")
	assert.NotContains(t, rendered, "123")
	assert.Contains(t, rendered, "************4242")

	logged := payment.LogValue().String()
	assert.NotContains(t, logged, "4242424242424242")
}

func TestPostPaymentRequestStringIsMasked(t *testing.T) {
	req := PostPaymentRequest{
		CardNumber:  strPtr("4242424242424242"),
		ExpiryMonth: intPtr(12),
		ExpiryYear:  intPtr(2026),
		Currency:    strPtr("GBP"),
		Amount:      int64Ptr(1000),
		CVV:         strPtr("123"),
	}

	rendered := req.String()
	assert.NotContains(t, rendered, "4242424242424242")
	assert.NotContains(t, rendered, "123")
	assert.Contains(t, rendered, "4242")
}

func TestNewPaymentRecord(t *testing.T) {
	card, month, year, currency, amount, cvv := validArgs()
	payment := newPaymentAt(fixedNow, card, month, year, currency, amount, cvv).Value()

	record := NewPaymentRecord(payment, "cko_abc123", StatusApproved)

	assert.Equal(t, PaymentRecord{
		ID:                 "cko_abc123",
		Status:             StatusApproved,
		LastFourCardDigits: "4242",
		ExpiryMonth:        12,
		ExpiryYear:         2026,
		Currency:           GBP,
		Amount:             1000,
	}, record)
}

// NewPayment uses the real clock; a card expiring next year must pass.
func TestNewPaymentUsesCurrentDate(t *testing.T) {
	nextYear := time.Now().Year() + 1
	result := NewPayment(strPtr("4242424242424242"), intPtr(12), &nextYear, strPtr("EUR"), int64Ptr(50), strPtr("9999"))

	assert.True(t, result.IsSuccess())
}
