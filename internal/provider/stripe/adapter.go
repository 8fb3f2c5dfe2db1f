package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"go.uber.org/zap"

	"github.com/revstack-dev/revstack/internal/provider/domain"
	"github.com/revstack-dev/revstack/internal/provider/webhook"
)

// Adapter translates normalized gateway inputs into Stripe SDK calls and
// Stripe responses back into normalized entities. It holds no per-merchant
// state; credentials arrive in the CallContext of every call.
type Adapter struct {
	log      *zap.Logger
	clients  *clientPool
	verifier *webhook.Verifier
}

type Option func(*Adapter)

// WithVerifier overrides the webhook verifier, mainly to relax tolerance in
// tests.
func WithVerifier(v *webhook.Verifier) Option {
	return func(a *Adapter) { a.verifier = v }
}

func NewAdapter(log *zap.Logger, opts ...Option) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Adapter{
		log:      log.Named("provider.stripe"),
		clients:  newClientPool(defaultCallTimeout),
		verifier: webhook.New(webhook.DefaultTolerance),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) client(call domain.CallContext) (*client.API, error) {
	key := strings.TrimSpace(call.ConfigString("secret_key"))
	if key == "" {
		return nil, fmt.Errorf("%w: secret_key not configured", domain.ErrInvalidInput)
	}
	return a.clients.get(key), nil
}

// params builds the embedded request params shared by every call, wiring the
// caller's context and idempotency key. Stripe deduplicates vendor-side on
// the key, which is what makes client retries safe.
func callParams(ctx context.Context, call domain.CallContext, mutating bool) stripe.Params {
	p := stripe.Params{Context: ctx}
	if mutating && call.IdempotencyKey != "" {
		p.IdempotencyKey = stripe.String(call.IdempotencyKey)
	}
	return p
}

func rawJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return raw
}

// --- payments ---

func (a *Adapter) CreatePayment(ctx context.Context, call domain.CallContext, in domain.CreatePaymentInput) (domain.Result[domain.Payment], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}
	if in.Amount <= 0 {
		return domain.Failed[domain.Payment](&domain.Error{Code: domain.ErrCodeInvalidAmount, Message: "amount must be positive"}), nil
	}
	if in.Currency == "" {
		return domain.Failed[domain.Payment](&domain.Error{Code: domain.ErrCodeInvalidCurrency, Message: "currency is required"}), nil
	}

	params := &stripe.PaymentIntentParams{
		Params:   callParams(ctx, call, true),
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(strings.ToLower(in.Currency)),
	}
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}

	intent, err := sc.PaymentIntents.New(params)
	if err != nil {
		return domain.Failed[domain.Payment](normalizeError(err)), nil
	}
	return a.paymentResult(intent), nil
}

// GetPayment accepts either a payment-intent id or a checkout-session id. A
// session id is first resolved to its underlying payment intent; a session
// that has not been paid yet has none and reports resource_not_found.
func (a *Adapter) GetPayment(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Payment], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}

	if strings.HasPrefix(id, "cs_") {
		params := &stripe.CheckoutSessionParams{Params: callParams(ctx, call, false)}
		params.AddExpand("payment_intent")
		sess, err := sc.CheckoutSessions.Get(id, params)
		if err != nil {
			return domain.Failed[domain.Payment](normalizeError(err)), nil
		}
		if sess.PaymentIntent == nil {
			return domain.Failed[domain.Payment](&domain.Error{
				Code:    domain.ErrCodeResourceNotFound,
				Message: "checkout session has no payment yet",
			}), nil
		}
		return a.paymentResult(sess.PaymentIntent), nil
	}

	intent, err := sc.PaymentIntents.Get(id, &stripe.PaymentIntentParams{Params: callParams(ctx, call, false)})
	if err != nil {
		return domain.Failed[domain.Payment](normalizeError(err)), nil
	}
	return a.paymentResult(intent), nil
}

func (a *Adapter) CapturePayment(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Payment], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Payment]{}, err
	}
	intent, err := sc.PaymentIntents.Capture(id, &stripe.PaymentIntentCaptureParams{Params: callParams(ctx, call, true)})
	if err != nil {
		return domain.Failed[domain.Payment](normalizeError(err)), nil
	}
	return a.paymentResult(intent), nil
}

func (a *Adapter) RefundPayment(ctx context.Context, call domain.CallContext, in domain.RefundPaymentInput) (domain.Result[domain.Refund], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Refund]{}, err
	}
	if in.PaymentID == "" {
		return domain.Result[domain.Refund]{}, fmt.Errorf("%w: payment_id is required", domain.ErrInvalidInput)
	}

	params := &stripe.RefundParams{
		Params:        callParams(ctx, call, true),
		PaymentIntent: stripe.String(in.PaymentID),
	}
	if in.Amount > 0 {
		params.Amount = stripe.Int64(in.Amount)
	}
	if in.Reason != "" {
		params.Reason = stripe.String(in.Reason)
	}

	refund, err := sc.Refunds.New(params)
	if err != nil {
		return domain.Failed[domain.Refund](normalizeError(err)), nil
	}
	return domain.Succeeded(domain.Refund{
		Provider:   Slug,
		ExternalID: refund.ID,
		PaymentID:  in.PaymentID,
		Amount:     refund.Amount,
		Currency:   strings.ToUpper(string(refund.Currency)),
		CreatedAt:  time.Unix(refund.Created, 0).UTC(),
		Raw:        rawJSON(refund),
	}), nil
}

func (a *Adapter) ListPayments(ctx context.Context, call domain.CallContext, in domain.ListPaymentsInput) (domain.Result[[]domain.Payment], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[[]domain.Payment]{}, err
	}

	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	if in.CustomerID != "" {
		params.Customer = stripe.String(in.CustomerID)
	}
	if in.Limit > 0 {
		params.Limit = stripe.Int64(in.Limit)
	}

	payments := make([]domain.Payment, 0)
	iter := sc.PaymentIntents.List(params)
	for iter.Next() {
		payments = append(payments, a.normalizePayment(iter.PaymentIntent()))
	}
	if err := iter.Err(); err != nil {
		return domain.Failed[[]domain.Payment](normalizeError(err)), nil
	}
	return domain.Succeeded(payments), nil
}

func (a *Adapter) normalizePayment(intent *stripe.PaymentIntent) domain.Payment {
	payment := domain.Payment{
		Provider:   Slug,
		ExternalID: intent.ID,
		Status:     mapPaymentStatus(string(intent.Status)),
		Amount:     intent.Amount,
		Currency:   strings.ToUpper(string(intent.Currency)),
		CreatedAt:  time.Unix(intent.Created, 0).UTC(),
		Raw:        rawJSON(intent),
	}
	if intent.Customer != nil {
		payment.CustomerID = intent.Customer.ID
	}
	return payment
}

// paymentResult shapes the envelope from a payment's normalized status:
// requires_action surfaces the vendor's redirect, failure states carry the
// last vendor error.
func (a *Adapter) paymentResult(intent *stripe.PaymentIntent) domain.Result[domain.Payment] {
	payment := a.normalizePayment(intent)
	switch payment.Status {
	case domain.PaymentStatusRequiresAction:
		action := domain.NextAction{Type: "use_stripe_sdk"}
		if intent.NextAction != nil && intent.NextAction.RedirectToURL != nil {
			action = domain.NextAction{Type: "redirect", URL: intent.NextAction.RedirectToURL.URL}
		}
		return domain.RequiresAction(payment, action)
	case domain.PaymentStatusFailed, domain.PaymentStatusCanceled:
		normalized := &domain.Error{Code: domain.ErrCodeInvalidState, Message: "payment is " + string(payment.Status)}
		if intent.LastPaymentError != nil {
			normalized = normalizeError(intent.LastPaymentError)
		}
		return domain.Failed[domain.Payment](normalized)
	default:
		return domain.Succeeded(payment)
	}
}

// --- subscriptions ---

func (a *Adapter) CreateSubscription(ctx context.Context, call domain.CallContext, in domain.CreateSubscriptionInput) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	if in.CustomerID == "" || in.PriceID == "" {
		return domain.Result[domain.Subscription]{}, fmt.Errorf("%w: customer_id and price_id are required", domain.ErrInvalidInput)
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	params := &stripe.SubscriptionParams{
		Params:   callParams(ctx, call, true),
		Customer: stripe.String(in.CustomerID),
		Items: []*stripe.SubscriptionItemsParams{{
			Price:    stripe.String(in.PriceID),
			Quantity: stripe.Int64(quantity),
		}},
	}
	if in.TrialDays > 0 {
		params.TrialPeriodDays = stripe.Int64(in.TrialDays)
	}

	sub, err := sc.Subscriptions.New(params)
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeSubscription(sub)), nil
}

func (a *Adapter) GetSubscription(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	sub, err := sc.Subscriptions.Get(id, &stripe.SubscriptionParams{Params: callParams(ctx, call, false)})
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeSubscription(sub)), nil
}

// UpdateSubscription changes price or quantity on an existing subscription.
// Stripe mutates line items by item id, so this is a read-modify-write: the
// current subscription is fetched to locate the mutable item first. Nothing
// serializes concurrent mutations of the same subscription here; callers
// needing that must queue per resource id.
func (a *Adapter) UpdateSubscription(ctx context.Context, call domain.CallContext, in domain.UpdateSubscriptionInput) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}
	if in.SubscriptionID == "" {
		return domain.Result[domain.Subscription]{}, fmt.Errorf("%w: subscription_id is required", domain.ErrInvalidInput)
	}

	current, err := sc.Subscriptions.Get(in.SubscriptionID, &stripe.SubscriptionParams{Params: callParams(ctx, call, false)})
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	if current.Items == nil || len(current.Items.Data) == 0 {
		return domain.Failed[domain.Subscription](&domain.Error{
			Code:    domain.ErrCodeInvalidState,
			Message: "subscription has no line items",
		}), nil
	}

	item := &stripe.SubscriptionItemsParams{ID: stripe.String(current.Items.Data[0].ID)}
	if in.PriceID != "" {
		item.Price = stripe.String(in.PriceID)
	}
	if in.Quantity > 0 {
		item.Quantity = stripe.Int64(in.Quantity)
	}

	params := &stripe.SubscriptionParams{
		Params: callParams(ctx, call, true),
		Items:  []*stripe.SubscriptionItemsParams{item},
	}
	params.ProrationBehavior = stripe.String("create_prorations")

	sub, err := sc.Subscriptions.Update(in.SubscriptionID, params)
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeSubscription(sub)), nil
}

func (a *Adapter) CancelSubscription(ctx context.Context, call domain.CallContext, id string, reason string) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}

	params := &stripe.SubscriptionCancelParams{Params: callParams(ctx, call, true)}
	if reason != "" {
		params.CancellationDetails = &stripe.SubscriptionCancelCancellationDetailsParams{
			Comment: stripe.String(reason),
		}
	}

	sub, err := sc.Subscriptions.Cancel(id, params)
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeSubscription(sub)), nil
}

func (a *Adapter) PauseSubscription(ctx context.Context, call domain.CallContext, id string, reason string) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}

	params := &stripe.SubscriptionParams{
		Params: callParams(ctx, call, true),
		PauseCollection: &stripe.SubscriptionPauseCollectionParams{
			Behavior: stripe.String("void"),
		},
	}
	if reason != "" {
		params.AddMetadata("pause_reason", reason)
	}

	sub, err := sc.Subscriptions.Update(id, params)
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	normalized := a.normalizeSubscription(sub)
	// Stripe keeps status "active" while collection is paused; the platform
	// state machine treats paused collection as paused.
	if sub.PauseCollection != nil {
		normalized.Status = domain.SubscriptionStatusPaused
	}
	return domain.Succeeded(normalized), nil
}

func (a *Adapter) ResumeSubscription(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Subscription], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Subscription]{}, err
	}

	params := &stripe.SubscriptionParams{Params: callParams(ctx, call, true)}
	// Clearing pause_collection requires an explicit empty value; the typed
	// params cannot express null.
	params.AddExtra("pause_collection", "")

	sub, err := sc.Subscriptions.Update(id, params)
	if err != nil {
		return domain.Failed[domain.Subscription](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeSubscription(sub)), nil
}

func (a *Adapter) normalizeSubscription(sub *stripe.Subscription) domain.Subscription {
	normalized := domain.Subscription{
		Provider:   Slug,
		ExternalID: sub.ID,
		Status:     mapSubscriptionStatus(string(sub.Status)),
		CreatedAt:  time.Unix(sub.Created, 0).UTC(),
		Raw:        rawJSON(sub),
	}
	if sub.Customer != nil {
		normalized.CustomerID = sub.Customer.ID
	}
	if sub.CurrentPeriodEnd > 0 {
		normalized.CurrentPeriodEnd = time.Unix(sub.CurrentPeriodEnd, 0).UTC()
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		normalized.Quantity = item.Quantity
		if item.Price != nil {
			normalized.PriceID = item.Price.ID
		}
	}
	if sub.PauseCollection != nil && normalized.Status == domain.SubscriptionStatusActive {
		normalized.Status = domain.SubscriptionStatusPaused
	}
	return normalized
}

// --- customers ---

func (a *Adapter) CreateCustomer(ctx context.Context, call domain.CallContext, in domain.CustomerInput) (domain.Result[domain.Customer], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}

	params := &stripe.CustomerParams{Params: callParams(ctx, call, true)}
	if in.Email != "" {
		params.Email = stripe.String(in.Email)
	}
	if in.Name != "" {
		params.Name = stripe.String(in.Name)
	}

	customer, err := sc.Customers.New(params)
	if err != nil {
		return domain.Failed[domain.Customer](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeCustomer(customer)), nil
}

func (a *Adapter) GetCustomer(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.Customer], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}
	customer, err := sc.Customers.Get(id, &stripe.CustomerParams{Params: callParams(ctx, call, false)})
	if err != nil {
		return domain.Failed[domain.Customer](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeCustomer(customer)), nil
}

func (a *Adapter) UpdateCustomer(ctx context.Context, call domain.CallContext, id string, in domain.CustomerInput) (domain.Result[domain.Customer], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.Customer]{}, err
	}

	params := &stripe.CustomerParams{Params: callParams(ctx, call, true)}
	if in.Email != "" {
		params.Email = stripe.String(in.Email)
	}
	if in.Name != "" {
		params.Name = stripe.String(in.Name)
	}

	customer, err := sc.Customers.Update(id, params)
	if err != nil {
		return domain.Failed[domain.Customer](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizeCustomer(customer)), nil
}

func (a *Adapter) DeleteCustomer(ctx context.Context, call domain.CallContext, id string) error {
	sc, err := a.client(call)
	if err != nil {
		return err
	}
	if _, err := sc.Customers.Del(id, &stripe.CustomerParams{Params: callParams(ctx, call, true)}); err != nil {
		return fmt.Errorf("delete stripe customer: %w", err)
	}
	return nil
}

func (a *Adapter) normalizeCustomer(customer *stripe.Customer) domain.Customer {
	return domain.Customer{
		Provider:   Slug,
		ExternalID: customer.ID,
		Email:      customer.Email,
		Name:       customer.Name,
		CreatedAt:  time.Unix(customer.Created, 0).UTC(),
		Raw:        rawJSON(customer),
	}
}

// --- payment methods ---

func (a *Adapter) AttachPaymentMethod(ctx context.Context, call domain.CallContext, customerID, token string) (domain.Result[domain.PaymentMethod], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.PaymentMethod]{}, err
	}
	params := &stripe.PaymentMethodAttachParams{
		Params:   callParams(ctx, call, true),
		Customer: stripe.String(customerID),
	}
	method, err := sc.PaymentMethods.Attach(token, params)
	if err != nil {
		return domain.Failed[domain.PaymentMethod](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizePaymentMethod(method)), nil
}

func (a *Adapter) DetachPaymentMethod(ctx context.Context, call domain.CallContext, id string) error {
	sc, err := a.client(call)
	if err != nil {
		return err
	}
	if _, err := sc.PaymentMethods.Detach(id, &stripe.PaymentMethodDetachParams{Params: callParams(ctx, call, true)}); err != nil {
		return fmt.Errorf("detach stripe payment method: %w", err)
	}
	return nil
}

func (a *Adapter) GetPaymentMethod(ctx context.Context, call domain.CallContext, id string) (domain.Result[domain.PaymentMethod], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[domain.PaymentMethod]{}, err
	}
	method, err := sc.PaymentMethods.Get(id, &stripe.PaymentMethodParams{Params: callParams(ctx, call, false)})
	if err != nil {
		return domain.Failed[domain.PaymentMethod](normalizeError(err)), nil
	}
	return domain.Succeeded(a.normalizePaymentMethod(method)), nil
}

func (a *Adapter) ListPaymentMethods(ctx context.Context, call domain.CallContext, customerID string) (domain.Result[[]domain.PaymentMethod], error) {
	sc, err := a.client(call)
	if err != nil {
		return domain.Result[[]domain.PaymentMethod]{}, err
	}

	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String("card"),
	}
	params.Context = ctx

	methods := make([]domain.PaymentMethod, 0)
	iter := sc.PaymentMethods.List(params)
	for iter.Next() {
		methods = append(methods, a.normalizePaymentMethod(iter.PaymentMethod()))
	}
	if err := iter.Err(); err != nil {
		return domain.Failed[[]domain.PaymentMethod](normalizeError(err)), nil
	}
	return domain.Succeeded(methods), nil
}

func (a *Adapter) normalizePaymentMethod(method *stripe.PaymentMethod) domain.PaymentMethod {
	normalized := domain.PaymentMethod{
		Provider:   Slug,
		ExternalID: method.ID,
		Type:       string(method.Type),
		Raw:        rawJSON(method),
	}
	if method.Customer != nil {
		normalized.CustomerID = method.Customer.ID
	}
	if method.Card != nil {
		normalized.Brand = string(method.Card.Brand)
		normalized.Last4 = method.Card.Last4
		normalized.ExpMonth = method.Card.ExpMonth
		normalized.ExpYear = method.Card.ExpYear
	}
	return normalized
}
