package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func int64Ptr(i int64) *int64 { return &i }

func TestNewMoney(t *testing.T) {
	testCases := []struct {
		name           string
		amount         *int64
		currency       *string
		expectedErrors []string
	}{
		{
			name:     "OK",
			amount:   int64Ptr(1817),
			currency: strPtr("USD"),
		},
		{
			name:           "missing amount",
			amount:         nil,
			currency:       strPtr("USD"),
			expectedErrors: []string{"Amount in minor units is required"},
		},
		{
			name:           "zero amount",
			amount:         int64Ptr(0),
			currency:       strPtr("USD"),
			expectedErrors: []string{"Amount in minor units must be positive"},
		},
		{
			name:           "negative amount",
			amount:         int64Ptr(-100),
			currency:       strPtr("GBP"),
			expectedErrors: []string{"Amount in minor units must be positive"},
		},
		{
			name:           "missing currency",
			amount:         int64Ptr(100),
			currency:       nil,
			expectedErrors: []string{"Currency code is required"},
		},
		{
			name:           "currency too short",
			amount:         int64Ptr(100),
			currency:       strPtr("US"),
			expectedErrors: []string{"Currency code must be 3 uppercase letters"},
		},
		{
			name:           "lowercase currency",
			amount:         int64Ptr(100),
			currency:       strPtr("usd"),
			expectedErrors: []string{"Currency code must be 3 uppercase letters"},
		},
		{
			name:           "unsupported currency",
			amount:         int64Ptr(100),
			currency:       strPtr("JPY"),
			expectedErrors: []string{"Invalid currency code. Must be one of: USD, GBP, EUR"},
		},
		{
			name:     "both checks fail and are merged",
			amount:   int64Ptr(-1),
			currency: strPtr("JPY"),
			expectedErrors: []string{
				"Amount in minor units must be positive",
				"Invalid currency code. Must be one of: USD, GBP, EUR",
			},
		},
		{
			name:     "both fields missing",
			amount:   nil,
			currency: nil,
			expectedErrors: []string{
				"Amount in minor units is required",
				"Currency code is required",
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := NewMoney(testCase.amount, testCase.currency)

			if len(testCase.expectedErrors) == 0 {
				assert.True(t, result.IsSuccess())
				assert.Empty(t, result.Errors())
				return
			}

			assert.True(t, result.IsFailure())
			assert.Equal(t, testCase.expectedErrors, result.Errors())
		})
	}
}

func TestMoneyUnits(t *testing.T) {
	money := NewMoney(int64Ptr(1817), strPtr("GBP")).Value()

	assert.Equal(t, int64(1817), money.MinorUnits())
	assert.Equal(t, 18.17, money.MajorUnits())
	assert.Equal(t, GBP, money.Currency())
	assert.Equal(t, "18.17 GBP", money.String())
}

func TestResultValuePanicsOnFailure(t *testing.T) {
	result := NewMoney(nil, nil)

	assert.True(t, result.IsFailure())
	assert.Panics(t, func() { _ = result.Value() })
}

func TestParseCurrencyIsCaseSensitive(t *testing.T) {
	_, ok := ParseCurrency("eur")
	assert.False(t, ok)

	currency, ok := ParseCurrency("EUR")
	assert.True(t, ok)
	assert.Equal(t, EUR, currency)
}
