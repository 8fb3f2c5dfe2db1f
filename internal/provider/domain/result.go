package domain

// ResultStatus tags the outcome of a vendor call.
type ResultStatus string

const (
	ResultSuccess        ResultStatus = "success"
	ResultRequiresAction ResultStatus = "requires_action"
	ResultFailed         ResultStatus = "failed"
)

// NextAction tells the caller what has to happen before the operation can
// complete, typically redirecting the customer to a vendor-hosted page.
type NextAction struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// Result is the universal return envelope for vendor calls.
//
// Invariant: Data is non-nil iff Status is success or requires_action;
// Error is non-nil iff Status is failed.
type Result[T any] struct {
	Data       *T           `json:"data"`
	Status     ResultStatus `json:"status"`
	NextAction *NextAction  `json:"next_action,omitempty"`
	Error      *Error       `json:"error,omitempty"`
}

// Succeeded wraps a completed outcome.
func Succeeded[T any](data T) Result[T] {
	return Result[T]{Data: &data, Status: ResultSuccess}
}

// RequiresAction wraps a pending outcome that needs caller-side follow-up.
func RequiresAction[T any](data T, action NextAction) Result[T] {
	return Result[T]{Data: &data, Status: ResultRequiresAction, NextAction: &action}
}

// Failed wraps a vendor-reported business failure.
func Failed[T any](err *Error) Result[T] {
	if err == nil {
		err = &Error{Code: ErrCodeUnknown}
	}
	return Result[T]{Status: ResultFailed, Error: err}
}

// OK reports whether the envelope carries data.
func (r Result[T]) OK() bool {
	return r.Status == ResultSuccess || r.Status == ResultRequiresAction
}
