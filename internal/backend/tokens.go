package backend

import (
	"context"
	"sync"
)

// Tokens are the caller's upstream credentials for one inbound request. A
// successful refresh replaces them in place so retries and later calls in the
// same request use the new pair.
type Tokens struct {
	mu       sync.Mutex
	access   string
	refresh  string
	rotated  bool
	onRotate func(access, refresh string)
}

func NewTokens(access, refresh string) *Tokens {
	return &Tokens{access: access, refresh: refresh}
}

// OnRotate registers fn to be called after a refresh replaced the pair.
func (t *Tokens) OnRotate(fn func(access, refresh string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRotate = fn
}

func (t *Tokens) Access() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.access
}

func (t *Tokens) Refresh() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.refresh
}

// Rotated returns the replacement pair if a refresh happened.
func (t *Tokens) Rotated() (access, refresh string, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.access, t.refresh, t.rotated
}

func (t *Tokens) rotate(access, refresh string) {
	t.mu.Lock()
	if refresh == "" {
		refresh = t.refresh
	}
	t.access = access
	t.refresh = refresh
	t.rotated = true
	fn := t.onRotate
	t.mu.Unlock()

	if fn != nil {
		fn(access, refresh)
	}
}

type tokensKey struct{}

// WithTokens attaches upstream credentials to ctx.
func WithTokens(ctx context.Context, t *Tokens) context.Context {
	return context.WithValue(ctx, tokensKey{}, t)
}

// TokensFrom returns the credentials attached by WithTokens, if any.
func TokensFrom(ctx context.Context) *Tokens {
	t, _ := ctx.Value(tokensKey{}).(*Tokens)
	return t
}
