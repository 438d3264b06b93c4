package bank

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"cko-gateway/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//go:generate mockgen -source=client.go -destination=mocks/mock.go -package=mocks

var bankRequestsCounter *prometheus.CounterVec

func init() {
	bankRequestsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_requests_total",
		Help: "Total number of outbound bank authorization requests, by outcome",
	}, []string{"outcome"})
}

// FailureKind classifies every way a bank call can fail. Each failure
// maps to exactly one kind; the distinction matters to callers because
// only some kinds guarantee that no charge occurred.
type FailureKind string

const (
	// FailureRejected: the bank answered with a non-success status.
	// Definite, non-retryable rejection.
	FailureRejected FailureKind = "bank_rejected"
	// FailureConnection: no connection could be established. No charge
	// occurred.
	FailureConnection FailureKind = "connection_failure"
	// FailureCommunication: the connection was established but the
	// exchange was interrupted or the response was unusable. The
	// outcome is ambiguous; callers must not assume non-charge.
	FailureCommunication FailureKind = "communication_failure"
	// FailurePreparation: the outbound request could not be built.
	// No charge occurred.
	FailurePreparation FailureKind = "request_preparation_failure"
)

const (
	msgRejected        = "Bank rejected the payment request. This could be due to invalid payment details"
	msgConnection      = "Unable to establish connection with bank. The payment was not processed"
	msgCommunication   = "The outcome of this payment is unknown due to a communication error with the bank"
	msgEmptyResponse   = "The bank returned an empty response. The outcome of this payment is unknown"
	msgInvalidResponse = "The bank returned an invalid response. The outcome of this payment is unknown"
	msgPreparation     = "Failed to prepare bank payment request. The payment was not processed"
)

// Error is the single failure type crossing the bank boundary.
type Error struct {
	Kind    FailureKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// PaymentRequest is the outbound wire shape of a bank authorization
// call. Expiry is formatted as "MM/YYYY".
type PaymentRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int64  `json:"amount"`
	CVV        string `json:"cvv"`
}

func RequestFromPayment(p domain.Payment) PaymentRequest {
	return PaymentRequest{
		CardNumber: p.CardNumber(),
		ExpiryDate: fmt.Sprintf("%02d/%d", p.ExpiryMonth(), p.ExpiryYear()),
		Currency:   string(p.Currency()),
		Amount:     p.AmountMinorUnits(),
		CVV:        p.CVV(),
	}
}

func (r PaymentRequest) String() string {
	masked := "****"
	if len(r.CardNumber) >= 4 {
		masked = "****" + r.CardNumber[len(r.CardNumber)-4:]
	}
	return fmt.Sprintf("PaymentRequest{card_number=%s, expiry_date=%s, currency=%s, amount=%d, cvv=***}",
		masked, r.ExpiryDate, r.Currency, r.Amount)
}

type PaymentResponse struct {
	Authorized        bool    `json:"authorized"`
	AuthorizationCode *string `json:"authorization_code"`
}

type Client interface {
	MakePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error)
}

// HTTPClient talks to the acquiring bank over HTTP. One synchronous
// attempt per call; retrying is the caller's decision, never made here.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPClient(baseURL string, connectTimeout time.Duration, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: connectTimeout}).DialContext,
			},
		},
		logger: logger,
	}
}

func (c *HTTPClient) MakePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		c.logger.Error("failed to serialize bank payment request", slog.String("error", err.Error()))
		return c.fail(FailurePreparation, msgPreparation)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		c.logger.Error("failed to build bank HTTP request", slog.String("error", err.Error()))
		return c.fail(FailurePreparation, msgPreparation)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		rejection, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		c.logger.Error("bank rejected the payment request",
			slog.String("request", req.String()),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(rejection)),
		)
		return c.fail(FailureRejected, msgRejected)
	}

	return c.parseResponse(resp.Body)
}

// classifyTransportError separates "never reached the bank" from
// "reached it but the exchange broke". Dial failures are the former;
// timeouts and mid-flight errors are the latter, because by then the
// outcome is unknown.
func (c *HTTPClient) classifyTransportError(err error) (PaymentResponse, error) {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		c.logger.Error("bank call timed out", slog.String("error", err.Error()))
		return c.fail(FailureCommunication, msgCommunication)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		c.logger.Error("unable to establish connection with bank", slog.String("error", err.Error()))
		return c.fail(FailureConnection, msgConnection)
	}

	c.logger.Error("connection lost while communicating with bank", slog.String("error", err.Error()))
	return c.fail(FailureCommunication, msgCommunication)
}

func (c *HTTPClient) parseResponse(body io.Reader) (PaymentResponse, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		c.logger.Error("failed to read bank response", slog.String("error", err.Error()))
		return c.fail(FailureCommunication, msgCommunication)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		c.logger.Error("bank returned empty response")
		return c.fail(FailureCommunication, msgEmptyResponse)
	}

	var out PaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		c.logger.Error("failed to parse bank response", slog.String("body", string(raw)), slog.String("error", err.Error()))
		return c.fail(FailureCommunication, msgInvalidResponse)
	}

	bankRequestsCounter.WithLabelValues("answered").Inc()
	return out, nil
}

func (c *HTTPClient) fail(kind FailureKind, message string) (PaymentResponse, error) {
	bankRequestsCounter.WithLabelValues(string(kind)).Inc()
	return PaymentResponse{}, &Error{Kind: kind, Message: message}
}
