// internal/services/checkout_service.go
package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"

	"github.com/javajoker/jewelry-atelier/internal/config"
	"github.com/javajoker/jewelry-atelier/internal/models"
)

type CheckoutService struct {
	config *config.Config
	// createIntent is swapped in tests.
	createIntent func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type CheckoutRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}

type OrderSummary struct {
	Items         int                    `json:"items"`
	Subtotal      float64                `json:"subtotal"`
	Tax           float64                `json:"tax"`
	Shipping      float64                `json:"shipping"`
	Total         float64                `json:"total"`
	Currency      string                 `json:"currency"`
	PaymentIntent *PaymentIntentResponse `json:"paymentIntent,omitempty"`
}

func NewCheckoutService(cfg *config.Config) *CheckoutService {
	// Initialize Stripe
	stripe.Key = cfg.Payment.StripeSecretKey

	return &CheckoutService{
		config:       cfg,
		createIntent: paymentintent.New,
	}
}

func (s *CheckoutService) PaymentsEnabled() bool {
	return s.config.Payment.StripeSecretKey != ""
}

// Quote prices a cart: subtotal, tax on the subtotal, flat shipping when the
// cart is non-empty.
func (s *CheckoutService) Quote(cart []models.CartItem) OrderSummary {
	subtotal := decimal.Zero
	items := 0
	for _, item := range cart {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Design.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		items += item.Quantity
	}

	tax := subtotal.Mul(decimal.NewFromFloat(s.config.Payment.TaxRate)).Round(2)
	shipping := decimal.Zero
	if len(cart) > 0 {
		shipping = decimal.NewFromFloat(s.config.Payment.ShippingFlat)
	}
	subtotal = subtotal.Round(2)

	return OrderSummary{
		Items:    items,
		Subtotal: subtotal.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    subtotal.Add(tax).Add(shipping).Round(2).InexactFloat64(),
		Currency: s.config.Payment.Currency,
	}
}

// Checkout quotes the cart and, when Stripe is configured, opens a payment
// intent for the total.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, cart []models.CartItem, req *CheckoutRequest) (*OrderSummary, error) {
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	summary := s.Quote(cart)
	if !s.PaymentsEnabled() {
		logrus.WithField("session_id", sessionID).Info("Checkout quoted without payment provider")
		return &summary, nil
	}

	// Convert amount to cents for Stripe
	amountInCents := decimal.NewFromFloat(summary.Total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents),
		Currency: stripe.String(summary.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("session_id", sessionID)
	params.AddMetadata("items", fmt.Sprintf("%d", summary.Items))
	if req != nil && req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}

	pi, err := s.createIntent(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	summary.PaymentIntent = &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}
	return &summary, nil
}
