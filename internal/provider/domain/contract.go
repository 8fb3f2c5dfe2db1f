package domain

import (
	"context"
	"net/http"
)

type CreatePaymentInput struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	CustomerID  string `json:"customer_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type RefundPaymentInput struct {
	PaymentID string `json:"payment_id"`
	// Amount of zero refunds the full remaining balance.
	Amount int64  `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type ListPaymentsInput struct {
	CustomerID string `json:"customer_id,omitempty"`
	Limit      int64  `json:"limit,omitempty"`
}

type CreateSubscriptionInput struct {
	CustomerID string `json:"customer_id"`
	PriceID    string `json:"price_id"`
	Quantity   int64  `json:"quantity,omitempty"`
	TrialDays  int64  `json:"trial_days,omitempty"`
}

type UpdateSubscriptionInput struct {
	SubscriptionID string `json:"subscription_id"`
	PriceID        string `json:"price_id,omitempty"`
	Quantity       int64  `json:"quantity,omitempty"`
}

// CheckoutMode selects what a checkout session pays for.
type CheckoutMode string

const (
	CheckoutModePayment      CheckoutMode = "payment"
	CheckoutModeSubscription CheckoutMode = "subscription"
	CheckoutModeSetup        CheckoutMode = "setup"
)

// LineItem references a vendor price or describes an inline one. Exactly one
// of PriceID and UnitAmount/Currency must be set.
type LineItem struct {
	PriceID     string `json:"price_id,omitempty"`
	Quantity    int64  `json:"quantity"`
	UnitAmount  int64  `json:"unit_amount,omitempty"`
	Currency    string `json:"currency,omitempty"`
	Description string `json:"description,omitempty"`
	// Interval is the recurring interval for inline subscription prices
	// (month, year). Required in subscription mode, forbidden otherwise.
	Interval string `json:"interval,omitempty"`
}

type CreateCheckoutSessionInput struct {
	Mode       CheckoutMode `json:"mode"`
	LineItems  []LineItem   `json:"line_items"`
	SuccessURL string       `json:"success_url"`
	CancelURL  string       `json:"cancel_url"`
	CustomerID string       `json:"customer_id,omitempty"`
}

type CustomerInput struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

type InstallInput struct {
	// WebhookURL is the platform endpoint the vendor should deliver events
	// to, when the vendor supports endpoint registration.
	WebhookURL string `json:"webhook_url,omitempty"`
}

// InstallResult carries what install produced. WebhookEndpointID and
// WebhookSecret are empty when registration was skipped or failed; install
// still succeeds in that case.
type InstallResult struct {
	WebhookEndpointID string `json:"webhook_endpoint_id,omitempty"`
	WebhookSecret     string `json:"webhook_secret,omitempty"`
	WebhookRegistered bool   `json:"webhook_registered"`
}

type UninstallInput struct {
	WebhookEndpointID string `json:"webhook_endpoint_id,omitempty"`
}

// Provider is the unified contract every provider satisfies. Only the
// capability gate implements it directly; concrete adapters implement the
// narrow per-concern interfaces below and the gate routes calls to them,
// failing with *NotImplementedError for anything not declared and wired.
//
// Expected business failures come back inside the Result envelope. A non-nil
// Go error means misuse, misconfiguration or an unreachable vendor.
type Provider interface {
	Manifest() Manifest

	ValidateCredentials(ctx context.Context, call CallContext) (bool, error)
	OnInstall(ctx context.Context, call CallContext, in InstallInput) (*InstallResult, error)
	OnUninstall(ctx context.Context, call CallContext, in UninstallInput) error

	CreatePayment(ctx context.Context, call CallContext, in CreatePaymentInput) (Result[Payment], error)
	GetPayment(ctx context.Context, call CallContext, id string) (Result[Payment], error)
	CapturePayment(ctx context.Context, call CallContext, id string) (Result[Payment], error)
	RefundPayment(ctx context.Context, call CallContext, in RefundPaymentInput) (Result[Refund], error)
	ListPayments(ctx context.Context, call CallContext, in ListPaymentsInput) (Result[[]Payment], error)

	CreateSubscription(ctx context.Context, call CallContext, in CreateSubscriptionInput) (Result[Subscription], error)
	GetSubscription(ctx context.Context, call CallContext, id string) (Result[Subscription], error)
	UpdateSubscription(ctx context.Context, call CallContext, in UpdateSubscriptionInput) (Result[Subscription], error)
	CancelSubscription(ctx context.Context, call CallContext, id string, reason string) (Result[Subscription], error)
	PauseSubscription(ctx context.Context, call CallContext, id string, reason string) (Result[Subscription], error)
	ResumeSubscription(ctx context.Context, call CallContext, id string) (Result[Subscription], error)

	CreateCheckoutSession(ctx context.Context, call CallContext, in CreateCheckoutSessionInput) (Result[CheckoutSession], error)

	CreateCustomer(ctx context.Context, call CallContext, in CustomerInput) (Result[Customer], error)
	GetCustomer(ctx context.Context, call CallContext, id string) (Result[Customer], error)
	UpdateCustomer(ctx context.Context, call CallContext, id string, in CustomerInput) (Result[Customer], error)
	DeleteCustomer(ctx context.Context, call CallContext, id string) error

	AttachPaymentMethod(ctx context.Context, call CallContext, customerID, token string) (Result[PaymentMethod], error)
	DetachPaymentMethod(ctx context.Context, call CallContext, id string) error
	GetPaymentMethod(ctx context.Context, call CallContext, id string) (Result[PaymentMethod], error)
	ListPaymentMethods(ctx context.Context, call CallContext, customerID string) (Result[[]PaymentMethod], error)

	VerifyWebhook(ctx context.Context, call CallContext, payload []byte, headers http.Header) error
	ParseWebhookEvent(ctx context.Context, payload []byte) (*Event, error)
}

// Narrow adapter interfaces. An adapter implements the subset its vendor
// supports; the gate type-asserts against these before dispatching.

type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, call CallContext) (bool, error)
}

type PaymentOperations interface {
	CreatePayment(ctx context.Context, call CallContext, in CreatePaymentInput) (Result[Payment], error)
	GetPayment(ctx context.Context, call CallContext, id string) (Result[Payment], error)
	RefundPayment(ctx context.Context, call CallContext, in RefundPaymentInput) (Result[Refund], error)
}

type PaymentCapturer interface {
	CapturePayment(ctx context.Context, call CallContext, id string) (Result[Payment], error)
}

type PaymentLister interface {
	ListPayments(ctx context.Context, call CallContext, in ListPaymentsInput) (Result[[]Payment], error)
}

type SubscriptionOperations interface {
	CreateSubscription(ctx context.Context, call CallContext, in CreateSubscriptionInput) (Result[Subscription], error)
	GetSubscription(ctx context.Context, call CallContext, id string) (Result[Subscription], error)
	UpdateSubscription(ctx context.Context, call CallContext, in UpdateSubscriptionInput) (Result[Subscription], error)
	CancelSubscription(ctx context.Context, call CallContext, id string, reason string) (Result[Subscription], error)
}

type SubscriptionPauser interface {
	PauseSubscription(ctx context.Context, call CallContext, id string, reason string) (Result[Subscription], error)
	ResumeSubscription(ctx context.Context, call CallContext, id string) (Result[Subscription], error)
}

type CheckoutOperations interface {
	CreateCheckoutSession(ctx context.Context, call CallContext, in CreateCheckoutSessionInput) (Result[CheckoutSession], error)
}

type CustomerOperations interface {
	CreateCustomer(ctx context.Context, call CallContext, in CustomerInput) (Result[Customer], error)
	GetCustomer(ctx context.Context, call CallContext, id string) (Result[Customer], error)
	UpdateCustomer(ctx context.Context, call CallContext, id string, in CustomerInput) (Result[Customer], error)
	DeleteCustomer(ctx context.Context, call CallContext, id string) error
}

type PaymentMethodOperations interface {
	AttachPaymentMethod(ctx context.Context, call CallContext, customerID, token string) (Result[PaymentMethod], error)
	DetachPaymentMethod(ctx context.Context, call CallContext, id string) error
	GetPaymentMethod(ctx context.Context, call CallContext, id string) (Result[PaymentMethod], error)
	ListPaymentMethods(ctx context.Context, call CallContext, customerID string) (Result[[]PaymentMethod], error)
}

type WebhookOperations interface {
	VerifyWebhook(ctx context.Context, call CallContext, payload []byte, headers http.Header) error
	ParseWebhookEvent(ctx context.Context, payload []byte) (*Event, error)
}

// WebhookRegistrar manages vendor-side webhook endpoints during install.
type WebhookRegistrar interface {
	RegisterWebhook(ctx context.Context, call CallContext, url string) (endpointID, secret string, err error)
	DeregisterWebhook(ctx context.Context, call CallContext, endpointID string) error
}
