package tests

import (
	"log"
	"time"

	"cko-gateway/internal/domain"
)

func Str(s string) *string { return &s }
func Int(i int) *int       { return &i }
func Int64(i int64) *int64 { return &i }

var (
	// FutureYear is always strictly after the current year, so month 12
	// of it passes every expiry check.
	FutureYear = time.Now().Year() + 1

	ValidRequest = domain.PostPaymentRequest{
		CardNumber:  Str("4242424242424242"),
		ExpiryMonth: Int(12),
		ExpiryYear:  Int(FutureYear),
		Currency:    Str("GBP"),
		Amount:      Int64(1000),
		CVV:         Str("123"),
	}

	ValidPayment domain.Payment
)

func init() {
	result := ValidRequest.ToPayment()
	if result.IsFailure() {
		log.Fatalf("test fixture failed validation: %v", result.Errors())
	}
	ValidPayment = result.Value()
}
