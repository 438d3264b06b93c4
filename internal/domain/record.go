package domain

import "fmt"

type PaymentStatus string

const (
	StatusApproved PaymentStatus = "APPROVED"
	StatusDeclined PaymentStatus = "DECLINED"
)

// PostPaymentRequest is the inbound JSON body of POST /api/payments.
// Pointer fields distinguish a missing value from a zero one so the
// validation layer can report "required" precisely.
type PostPaymentRequest struct {
	CardNumber  *string `json:"card_number"`
	ExpiryMonth *int    `json:"expiry_month"`
	ExpiryYear  *int    `json:"expiry_year"`
	Currency    *string `json:"currency"`
	Amount      *int64  `json:"amount"`
	CVV         *string `json:"cvv"`
}

func (r PostPaymentRequest) ToPayment() Result[Payment] {
	return NewPayment(r.CardNumber, r.ExpiryMonth, r.ExpiryYear, r.Currency, r.Amount, r.CVV)
}

func (r PostPaymentRequest) String() string {
	return fmt.Sprintf("PostPaymentRequest{card_number=%s, expiry_month=%s, expiry_year=%s, currency=%s, amount=%s, cvv=%s}",
		maskStringPtr(r.CardNumber), fmtIntPtr(r.ExpiryMonth), fmtIntPtr(r.ExpiryYear),
		fmtStringPtr(r.Currency), fmtInt64Ptr(r.Amount), maskAllPtr(r.CVV))
}

// PaymentRecord is the stored outcome of a completed bank round-trip.
// Created exactly once per submission and never mutated.
type PaymentRecord struct {
	ID                 string        `json:"id"`
	Status             PaymentStatus `json:"status"`
	LastFourCardDigits string        `json:"last_four_card_digits"`
	ExpiryMonth        int           `json:"expiry_month"`
	ExpiryYear         int           `json:"expiry_year"`
	Currency           Currency      `json:"currency"`
	Amount             int64         `json:"amount"`
}

func NewPaymentRecord(payment Payment, id string, status PaymentStatus) PaymentRecord {
	return PaymentRecord{
		ID:                 id,
		Status:             status,
		LastFourCardDigits: payment.LastFourDigits(),
		ExpiryMonth:        payment.ExpiryMonth(),
		ExpiryYear:         payment.ExpiryYear(),
		Currency:           payment.Currency(),
		Amount:             payment.AmountMinorUnits(),
	}
}

func maskStringPtr(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return maskCardTail(*s)
}

func maskAllPtr(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return "***"
}

func fmtStringPtr(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func fmtIntPtr(i *int) string {
	if i == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d", *i)
}

func fmtInt64Ptr(i *int64) string {
	if i == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%d", *i)
}
