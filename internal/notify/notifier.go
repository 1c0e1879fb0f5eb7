// Package notify fans out web push messages to registered subscribers when
// an event crosses the magnitude threshold. Delivery failures prune the
// failing subscriber and never interrupt the remaining fan-out.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/burakozcn01/turkiye-deprem-takip/config"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/logger"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/metrics"
	"github.com/burakozcn01/turkiye-deprem-takip/internal/models"
)

// Threshold is the minimum magnitude that triggers a notification
const Threshold = 3.0

// sender delivers one encrypted push message; swapped out in tests
type sender func(ctx context.Context, sub Subscription, payload []byte) error

// Notifier delivers push messages for significant events
type Notifier struct {
	subs *Subscriptions
	cfg  config.PushConfig
	send sender
}

// New creates a Notifier backed by the Web Push protocol (VAPID)
func New(subs *Subscriptions, cfg config.PushConfig) *Notifier {
	n := &Notifier{subs: subs, cfg: cfg}
	n.send = n.sendWebPush
	return n
}

type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Notify fans a push message out to every subscriber if the event meets
// the threshold. Failed subscribers are removed and not retried.
func (n *Notifier) Notify(ctx context.Context, ev models.Earthquake) {
	if ev.Magnitude < Threshold {
		return
	}

	payload, err := json.Marshal(pushPayload{
		Title: fmt.Sprintf("Deprem: M%g", ev.Magnitude),
		Body: fmt.Sprintf("%s yakınlarında deprem! Büyüklük: %g, Mesafe: %g km",
			ev.NearestCity, ev.Magnitude, ev.DistanceKm),
	})
	if err != nil {
		logger.Error("Marshal push payload failed", "error", err)
		return
	}

	for _, sub := range n.subs.Snapshot() {
		if err := n.send(ctx, sub, payload); err != nil {
			logger.Warn("Push delivery failed; removing subscriber",
				"subscription_id", sub.ID,
				"error", err,
			)
			n.subs.Remove(sub.Endpoint)
			metrics.RecordPushDelivery("error")
			continue
		}
		metrics.RecordPushDelivery("success")
	}
}

func (n *Notifier) sendWebPush(ctx context.Context, sub Subscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, sub.webpush(), &webpush.Options{
		Subscriber:      n.cfg.Subject,
		VAPIDPublicKey:  n.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: n.cfg.VAPIDPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
