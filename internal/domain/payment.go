package domain

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

var (
	cardNumberPattern = regexp.MustCompile(`^\d{14,19}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3,4}$`)
)

// Payment is a fully validated card payment. It is immutable and never
// observable in a partially valid state: NewPayment either returns a
// complete value or every validation failure at once. Card number and
// CVV are sensitive and only ever leave this type masked.
type Payment struct {
	cardNumber  string
	expiryMonth int
	expiryYear  int
	money       Money
	cvv         string
}

// NewPayment runs six independent checks and merges all failing
// messages in order: card number, expiry month, expiry year, expiry
// date, money, CVV. The year check ("not a past year") and the date
// check ("strictly after the current month") deliberately overlap so a
// card expiring in a past year surfaces both a coarse and a precise
// message.
func NewPayment(cardNumber *string, expiryMonth, expiryYear *int, currencyCode *string, amountMinorUnits *int64, cvv *string) Result[Payment] {
	return newPaymentAt(time.Now(), cardNumber, expiryMonth, expiryYear, currencyCode, amountMinorUnits, cvv)
}

func newPaymentAt(now time.Time, cardNumber *string, expiryMonth, expiryYear *int, currencyCode *string, amountMinorUnits *int64, cvv *string) Result[Payment] {
	cardRes := validateCardNumber(cardNumber)
	monthRes := validateExpiryMonth(expiryMonth)
	yearRes := validateExpiryYear(now, expiryYear)
	dateRes := validateExpiryDate(now, expiryMonth, expiryYear)
	moneyRes := NewMoney(amountMinorUnits, currencyCode)
	cvvRes := validateCVV(cvv)

	errs := collectErrors(
		cardRes.Errors(),
		monthRes.Errors(),
		yearRes.Errors(),
		dateRes.Errors(),
		moneyRes.Errors(),
		cvvRes.Errors(),
	)
	if len(errs) > 0 {
		return Failure[Payment](errs...)
	}

	return Success(Payment{
		cardNumber:  cardRes.Value(),
		expiryMonth: monthRes.Value(),
		expiryYear:  yearRes.Value(),
		money:       moneyRes.Value(),
		cvv:         cvvRes.Value(),
	})
}

func validateCardNumber(cardNumber *string) Result[string] {
	if cardNumber == nil {
		return Failure[string]("Card number is required")
	}
	if !cardNumberPattern.MatchString(*cardNumber) {
		return Failure[string]("Card number must be between 14-19 digits")
	}
	return Success(*cardNumber)
}

func validateExpiryMonth(month *int) Result[int] {
	if month == nil {
		return Failure[int]("Expiry month is required")
	}
	if *month < 1 || *month > 12 {
		return Failure[int]("Expiry month must be between 1 and 12")
	}
	return Success(*month)
}

func validateExpiryYear(now time.Time, year *int) Result[int] {
	if year == nil {
		return Failure[int]("Expiry year is required")
	}
	if *year < now.Year() {
		return Failure[int]("Expiry year must be in the future")
	}
	return Success(*year)
}

// validateExpiryDate checks the (month, year) pair as a whole: it must
// form a valid calendar month strictly after the current one. Missing
// components are left to the per-field checks above.
func validateExpiryDate(now time.Time, month, year *int) Result[struct{}] {
	if month == nil || year == nil {
		return Success(struct{}{})
	}
	if *month < 1 || *month > 12 {
		return Failure[struct{}]("Invalid expiry date")
	}
	if *year < now.Year() || (*year == now.Year() && *month <= int(now.Month())) {
		return Failure[struct{}]("Card expiry date must be in the future")
	}
	return Success(struct{}{})
}

func validateCVV(cvv *string) Result[string] {
	if cvv == nil {
		return Failure[string]("CVV is required")
	}
	if !cvvPattern.MatchString(*cvv) {
		return Failure[string]("Invalid CVV")
	}
	return Success(*cvv)
}

func (p Payment) CardNumber() string {
	return p.cardNumber
}

func (p Payment) ExpiryMonth() int {
	return p.expiryMonth
}

func (p Payment) ExpiryYear() int {
	return p.expiryYear
}

func (p Payment) Money() Money {
	return p.money
}

func (p Payment) AmountMinorUnits() int64 {
	return p.money.MinorUnits()
}

func (p Payment) Currency() Currency {
	return p.money.Currency()
}

func (p Payment) CVV() string {
	return p.cvv
}

func (p Payment) LastFourDigits() string {
	return p.cardNumber[len(p.cardNumber)-4:]
}

func (p Payment) MaskedCardNumber() string {
	return maskCardTail(p.cardNumber)
}

func (p Payment) MaskedCVV() string {
	return strings.Repeat("*", len(p.cvv))
}

func (p Payment) String() string {
	return fmt.Sprintf("Payment{card_number=%s, expiry_month=%d, expiry_year=%d, money=%s, cvv=%s}",
		p.MaskedCardNumber(), p.expiryMonth, p.expiryYear, p.money, p.MaskedCVV())
}

// LogValue keeps slog output masked no matter how a Payment is logged.
func (p Payment) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("card_number", p.MaskedCardNumber()),
		slog.Int("expiry_month", p.expiryMonth),
		slog.Int("expiry_year", p.expiryYear),
		slog.String("money", p.money.String()),
		slog.String("cvv", p.MaskedCVV()),
	)
}

// maskCardTail hides all but the last four digits of a card number.
func maskCardTail(cardNumber string) string {
	if len(cardNumber) < 4 {
		return "****"
	}
	return strings.Repeat("*", len(cardNumber)-4) + cardNumber[len(cardNumber)-4:]
}
