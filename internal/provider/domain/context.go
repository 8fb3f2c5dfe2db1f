package domain

// CallContext is the request-scoped identity bundle passed by value into
// every contract call. It is owned by the caller and never persisted.
type CallContext struct {
	// Config holds the decrypted provider configuration (secret keys and
	// similar). Adapters read it, nothing else should.
	Config map[string]any
	// TraceID correlates the call with platform logs and traces.
	TraceID string
	// IdempotencyKey is forwarded to the vendor on mutating calls so that
	// client retries cannot double-charge.
	IdempotencyKey string
	// TestMode routes the call at the vendor's sandbox environment when the
	// vendor distinguishes one.
	TestMode bool
}

// ConfigString reads a string field out of the call config.
func (c CallContext) ConfigString(key string) string {
	if c.Config == nil {
		return ""
	}
	value, _ := c.Config[key].(string)
	return value
}

// ConfigBool reads a boolean field out of the call config.
func (c CallContext) ConfigBool(key string) bool {
	if c.Config == nil {
		return false
	}
	value, _ := c.Config[key].(bool)
	return value
}
