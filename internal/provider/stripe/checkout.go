package stripe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"

	"github.com/revstack-dev/revstack/internal/provider/domain"
)

var checkoutModes = map[domain.CheckoutMode]stripe.CheckoutSessionMode{
	domain.CheckoutModePayment:      stripe.CheckoutSessionModePayment,
	domain.CheckoutModeSubscription: stripe.CheckoutSessionModeSubscription,
	domain.CheckoutModeSetup:        stripe.CheckoutSessionModeSetup,
}

// CreateCheckoutSession opens a vendor-hosted checkout page. The session is
// always a requires_action outcome: the caller has to send the customer to
// the returned URL before anything is charged.
func (a *Adapter) CreateCheckoutSession(ctx context.Context, call domain.CallContext, in domain.CreateCheckoutSessionInput) (domain.Result[domain.CheckoutSession], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.CheckoutSession]{}, err
	}

	params, err := buildCheckoutParams(call, in)
	if err != nil {
		return domain.Result[domain.CheckoutSession]{}, err
	}
	params.Params = callParams(ctx, call, true)

	sess, err := sc.CheckoutSessions.New(params)
	if err != nil {
		return domain.Failed[domain.CheckoutSession](normalizeError(err)), nil
	}

	session := domain.CheckoutSession{
		Provider:    Slug,
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
		Raw:         rawJSON(sess),
	}
	if sess.ExpiresAt > 0 {
		session.ExpiresAt = time.Unix(sess.ExpiresAt, 0).UTC()
	}
	return domain.RequiresAction(session, domain.NextAction{Type: "redirect", URL: sess.URL}), nil
}

// buildCheckoutParams validates and translates the normalized session input.
// Line items either reference a vendor price id or describe an inline price;
// inline subscription prices must carry a recurring interval and one-time or
// setup prices must not.
func buildCheckoutParams(call domain.CallContext, in domain.CreateCheckoutSessionInput) (*stripe.CheckoutSessionParams, error) {
	mode, ok := checkoutModes[in.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: unknown checkout mode %q", domain.ErrInvalidInput, in.Mode)
	}
	if in.SuccessURL == "" || in.CancelURL == "" {
		return nil, fmt.Errorf("%w: success_url and cancel_url are required", domain.ErrInvalidInput)
	}
	if mode != stripe.CheckoutSessionModeSetup && len(in.LineItems) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", domain.ErrInvalidInput)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(mode)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	if call.TraceID != "" {
		params.Metadata = map[string]string{"trace_id": call.TraceID}
	}

	for i, item := range in.LineItems {
		line, err := buildLineItem(mode, item)
		if err != nil {
			return nil, fmt.Errorf("line item %d: %w", i, err)
		}
		params.LineItems = append(params.LineItems, line)
	}
	return params, nil
}

func buildLineItem(mode stripe.CheckoutSessionMode, item domain.LineItem) (*stripe.CheckoutSessionLineItemParams, error) {
	quantity := item.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	line := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(quantity)}

	if item.PriceID != "" {
		line.Price = stripe.String(item.PriceID)
		return line, nil
	}

	if item.UnitAmount <= 0 || item.Currency == "" {
		return nil, fmt.Errorf("%w: inline prices need unit_amount and currency", domain.ErrInvalidInput)
	}

	name := item.Description
	if name == "" {
		name = "Item"
	}
	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String(strings.ToLower(item.Currency)),
		UnitAmount: stripe.Int64(item.UnitAmount),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(name),
		},
	}

	switch mode {
	case stripe.CheckoutSessionModeSubscription:
		if item.Interval == "" {
			return nil, fmt.Errorf("%w: subscription line items need a recurring interval", domain.ErrInvalidInput)
		}
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String(item.Interval),
		}
	default:
		if item.Interval != "" {
			return nil, fmt.Errorf("%w: recurring interval is only valid in subscription mode", domain.ErrInvalidInput)
		}
	}

	line.PriceData = priceData
	return line, nil
}
