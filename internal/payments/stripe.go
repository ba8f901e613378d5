// Package payments adapts the Stripe card processor to the service layer's
// PaymentGateway port. All charges on this platform are authorize-then-capture:
// holds are placed at reservation and settlement time, captured manually by the
// back office, or voided by the cleanup job when they expire.
package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"

	"urbandrive-backend/internal/domain"
	"urbandrive-backend/internal/logger"
	"urbandrive-backend/internal/service"
)

const currency = string(stripe.CurrencyUSD)

// StripeGateway implements service.PaymentGateway on the Stripe v82 client.
type StripeGateway struct {
	client        *stripe.Client
	timeout       time.Duration
	captureWindow time.Duration
}

func NewStripeGateway(apiKey string, timeout time.Duration, captureWindowDays int) *StripeGateway {
	return &StripeGateway{
		client:        stripe.NewClient(apiKey),
		timeout:       timeout,
		captureWindow: time.Duration(captureWindowDays) * 24 * time.Hour,
	}
}

// Authorize places a manual-capture hold on the renter's card. The intent is
// confirmed off-session with the payment method saved at signup, so a
// requires_capture status is the only successful outcome.
func (g *StripeGateway) Authorize(ctx context.Context, params service.AuthorizeParams) (*service.Authorization, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	key := params.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	}

	logger.ExternalServiceCall("stripe", "payment_intent.create", "idempotency_key", key)
	pi, err := g.client.V1PaymentIntents.Create(ctx, &stripe.PaymentIntentCreateParams{
		Params: stripe.Params{
			IdempotencyKey: stripe.String(key),
		},
		Amount:                    stripe.Int64(params.AmountMinor),
		Currency:                  stripe.String(currency),
		Customer:                  stripe.String(params.CustomerRef),
		PaymentMethod:             stripe.String(params.PaymentMethodRef),
		CaptureMethod:             stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Confirm:                   stripe.Bool(true),
		OffSession:                stripe.Bool(true),
		Description:               stripe.String(params.Description),
		StatementDescriptorSuffix: stripe.String(params.StatementSuffix),
	})
	if err != nil {
		return nil, classify("authorize", err)
	}
	if pi.Status != stripe.PaymentIntentStatusRequiresCapture {
		return nil, &domain.GatewayError{
			Operation: "authorize",
			Err:       errors.New("unexpected payment intent status " + string(pi.Status)),
		}
	}
	logger.ExternalServiceResult("stripe", "payment_intent.create", nil, "reference", pi.ID, "status", string(pi.Status))

	// Stripe does not report a capture deadline on the intent; the hold's
	// capture-before horizon is tracked locally from the configured window.
	return &service.Authorization{
		Reference:     pi.ID,
		Status:        domain.PaymentStatusRequiresCapture,
		CaptureBefore: time.Now().UTC().Add(g.captureWindow),
	}, nil
}

// Cancel voids an uncaptured hold. A hold Stripe has already released comes
// back as resource_missing or an invalid-state card error; both are treated
// as success since the money is no longer reserved either way.
func (g *StripeGateway) Cancel(ctx context.Context, reference string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	logger.ExternalServiceCall("stripe", "payment_intent.cancel", "reference", reference)
	_, err := g.client.V1PaymentIntents.Cancel(ctx, reference, &stripe.PaymentIntentCancelParams{
		CancellationReason: stripe.String(string(stripe.PaymentIntentCancellationReasonRequestedByCustomer)),
	})
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) && sErr.Code == stripe.ErrorCodeResourceMissing {
			return nil
		}
		return classify("cancel", err)
	}
	logger.ExternalServiceResult("stripe", "payment_intent.cancel", nil, "reference", reference)
	return nil
}

// classify splits Stripe failures into renter-actionable declines and
// everything else. Declines map to 402 upstream, the rest to 500.
func classify(operation string, err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		if sErr.Type == stripe.ErrorTypeCard || sErr.Code == stripe.ErrorCodeCardDeclined {
			return &domain.CardDeclinedError{
				DeclineCode: string(sErr.DeclineCode),
				Message:     sErr.Msg,
			}
		}
	}
	return &domain.GatewayError{Operation: operation, Err: err}
}
