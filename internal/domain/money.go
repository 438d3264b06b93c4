package domain

import (
	"fmt"
	"regexp"
	"strings"
)

type Currency string

const (
	USD Currency = "USD"
	GBP Currency = "GBP"
	EUR Currency = "EUR"
)

var supportedCurrencies = []Currency{USD, GBP, EUR}

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

var invalidCurrencyMessage = func() string {
	codes := make([]string, len(supportedCurrencies))
	for i, c := range supportedCurrencies {
		codes[i] = string(c)
	}
	return "Invalid currency code. Must be one of: " + strings.Join(codes, ", ")
}()

// ParseCurrency reports whether code names a supported currency.
// Matching is case-sensitive.
func ParseCurrency(code string) (Currency, bool) {
	switch Currency(code) {
	case USD, GBP, EUR:
		return Currency(code), true
	}
	return "", false
}

// Money is an amount in minor units tied to a supported currency.
// The zero value is meaningless; construct only through NewMoney.
type Money struct {
	minorUnits int64
	currency   Currency
}

// NewMoney validates both fields independently and merges the failures.
// Pointer arguments distinguish a missing field from a zero one.
func NewMoney(minorUnits *int64, currencyCode *string) Result[Money] {
	amount := validateAmount(minorUnits)
	currency := validateCurrency(currencyCode)

	errs := collectErrors(amount.Errors(), currency.Errors())
	if len(errs) > 0 {
		return Failure[Money](errs...)
	}

	return Success(Money{minorUnits: amount.Value(), currency: currency.Value()})
}

func validateAmount(minorUnits *int64) Result[int64] {
	if minorUnits == nil {
		return Failure[int64]("Amount in minor units is required")
	}
	if *minorUnits <= 0 {
		return Failure[int64]("Amount in minor units must be positive")
	}
	return Success(*minorUnits)
}

func validateCurrency(code *string) Result[Currency] {
	if code == nil {
		return Failure[Currency]("Currency code is required")
	}
	if !currencyCodePattern.MatchString(*code) {
		return Failure[Currency]("Currency code must be 3 uppercase letters")
	}
	currency, ok := ParseCurrency(*code)
	if !ok {
		return Failure[Currency](invalidCurrencyMessage)
	}
	return Success(currency)
}

func (m Money) MinorUnits() int64 {
	return m.minorUnits
}

func (m Money) MajorUnits() float64 {
	return float64(m.minorUnits) / 100.0
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f %s", m.MajorUnits(), m.currency)
}
