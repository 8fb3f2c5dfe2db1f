package stripe

import (
	"net/http"
	"sync"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"

	"github.com/revstack-dev/revstack/internal/observability/tracing"
)

// defaultCallTimeout bounds every vendor call. A slow Stripe outage surfaces
// as provider_unavailable instead of an indefinite hang.
const defaultCallTimeout = 30 * time.Second

// clientPool memoizes one SDK handle per secret key. The pool is owned by
// the adapter instance; nothing in this package touches the SDK's global
// key. First use under concurrency must produce exactly one handle, so the
// map is re-checked under the write lock.
type clientPool struct {
	mu      sync.RWMutex
	timeout time.Duration
	// backends overrides the SDK transport; tests point it at a stub server.
	backends *stripe.Backends
	clients  map[string]*client.API
}

func newClientPool(timeout time.Duration) *clientPool {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &clientPool{
		timeout: timeout,
		clients: make(map[string]*client.API),
	}
}

func (p *clientPool) get(secretKey string) *client.API {
	p.mu.RLock()
	sc, ok := p.clients[secretKey]
	p.mu.RUnlock()
	if ok {
		return sc
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if sc, ok := p.clients[secretKey]; ok {
		return sc
	}

	sc = &client.API{}
	backends := p.backends
	if backends == nil {
		httpClient := tracing.WrapHTTPClient(&http.Client{Timeout: p.timeout})
		backends = stripe.NewBackends(httpClient)
	}
	sc.Init(secretKey, backends)
	p.clients[secretKey] = sc
	return sc
}
