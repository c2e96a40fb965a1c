// Package relay hands session tokens from a browsing context to API
// clients. A Broker announces token requests and blocks the requester
// until some other party completes the request or the context expires.
package relay

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// Ensure Broker implements pagelens.TokenSource at compile time.
var _ pagelens.TokenSource = (*Broker)(nil)

// Request is an announced token request awaiting completion.
type Request struct {
	ID string
}

// Broker is a one-shot token relay. Token registers a request,
// announces it on Requests and waits; Complete delivers the token to
// the waiting caller. Each request is delivered at most once.
type Broker struct {
	mu       sync.Mutex
	pending  map[string]chan string
	requests chan Request
}

// NewBroker creates a Broker. The announcement channel is buffered so
// announcing never blocks the requester.
func NewBroker() *Broker {
	return &Broker{
		pending:  make(map[string]chan string),
		requests: make(chan Request, 16),
	}
}

// Requests announces pending token requests. The completing side reads
// from it and calls Complete with the request ID.
func (b *Broker) Requests() <-chan Request {
	return b.requests
}

// Token registers a request and blocks until it is completed or the
// context expires. The request is deregistered on return either way.
func (b *Broker) Token(ctx context.Context) (string, error) {
	id := uuid.New().String()
	ch := make(chan string, 1)

	b.mu.Lock()
	b.pending[id] = ch
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.pending, id)
		b.mu.Unlock()
	}()

	select {
	case b.requests <- Request{ID: id}:
	default:
		// announcement backlog full; the request stays completable by ID
	}

	select {
	case token := <-ch:
		return token, nil
	case <-ctx.Done():
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "token request %s expired", id)
	}
}

// Complete delivers a token to a pending request. Completing an unknown
// or already-completed request reports ENOTFOUND.
func (b *Broker) Complete(id, token string) error {
	b.mu.Lock()
	ch, ok := b.pending[id]
	if ok {
		delete(b.pending, id)
	}
	b.mu.Unlock()

	if !ok {
		return pagelens.Errorf(pagelens.ENOTFOUND, "no pending token request %s", id)
	}
	ch <- token
	return nil
}

// Static is a TokenSource that always yields the same token. Useful
// when the session token is known up front, e.g. parsed from a cookie.
type Static string

// Token implements pagelens.TokenSource.
func (s Static) Token(ctx context.Context) (string, error) {
	return string(s), nil
}
