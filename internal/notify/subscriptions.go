package notify

import (
	"sync"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/google/uuid"

	"github.com/burakozcn01/turkiye-deprem-takip/internal/metrics"
)

// Subscription is one registered push endpoint
type Subscription struct {
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
	Keys     Keys   `json:"keys"`
}

// Keys holds the client's encryption material
type Keys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

func (s Subscription) webpush() *webpush.Subscription {
	return &webpush.Subscription{
		Endpoint: s.Endpoint,
		Keys: webpush.Keys{
			P256dh: s.Keys.P256dh,
			Auth:   s.Keys.Auth,
		},
	}
}

// Subscriptions is the shared subscriber list. The registration endpoint
// appends concurrently with the notifier's reads and removals, so all
// mutation happens under the mutex.
type Subscriptions struct {
	mu   sync.Mutex
	subs []Subscription
}

// NewSubscriptions creates an empty subscriber list
func NewSubscriptions() *Subscriptions {
	return &Subscriptions{}
}

// Add registers an endpoint if not already present. It returns the stored
// subscription and whether it was newly added.
func (l *Subscriptions) Add(endpoint string, keys Keys) (Subscription, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, s := range l.subs {
		if s.Endpoint == endpoint {
			return s, false
		}
	}

	sub := Subscription{
		ID:       uuid.NewString(),
		Endpoint: endpoint,
		Keys:     keys,
	}
	l.subs = append(l.subs, sub)
	metrics.SetSubscriberCount(float64(len(l.subs)))
	return sub, true
}

// Remove drops the subscription with the given endpoint, if present
func (l *Subscriptions) Remove(endpoint string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, s := range l.subs {
		if s.Endpoint == endpoint {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			metrics.SetSubscriberCount(float64(len(l.subs)))
			return
		}
	}
}

// Snapshot returns a copy of the current list
func (l *Subscriptions) Snapshot() []Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Subscription, len(l.subs))
	copy(out, l.subs)
	return out
}

// Count returns the number of registered subscribers
func (l *Subscriptions) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}
