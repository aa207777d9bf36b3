/*
Package notify delivers reservation decisions to requesters via web push.

PURPOSE:
  Implements the fire-and-forget notification dispatcher consumed by the
  booking engine. Decisions (approved, rejected, cancelled) are queued on a
  buffered channel and delivered by a small worker pool; a full queue drops
  the event rather than blocking a booking. Delivery failures are logged and
  never affect reservation state.

SEE ALSO:
  - booking/engine.go: Notifier interface and call sites
  - store/sqlite/sqlite.go: SubscriptionStore implementation
*/
package notify

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/warp/facility-engine/booking"
)

// Subscription is a requester's web push endpoint.
type Subscription struct {
	Endpoint    string
	P256DH      string
	Auth        string
	RequesterID string
	CreatedAt   time.Time
}

// SubscriptionStore persists push subscriptions.
type SubscriptionStore interface {
	SaveSubscription(ctx context.Context, sub Subscription) error
	ListSubscriptionsByRequester(ctx context.Context, requesterID string) ([]Subscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Sender sends a single web push notification. Extracted as an interface so
// tests can stub delivery.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender delivers through the webpush library.
type WebPushSender struct{}

func (WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

type job struct {
	event       booking.EventType
	reservation booking.Reservation
}

// WorkerPool implements booking.Notifier with asynchronous delivery.
type WorkerPool struct {
	size    int
	jobs    chan job
	subs    SubscriptionStore
	options *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a pool of the given size. A nil options disables
// delivery (events are drained and dropped), which keeps deployments
// without VAPID keys working.
func NewWorkerPool(size int, subs SubscriptionStore, options *webpush.Options) *WorkerPool {
	if size < 1 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan job, size*8),
		subs:    subs,
		options: options,
		sender:  WebPushSender{},
	}
}

// SetSender swaps the delivery mechanism (tests).
func (wp *WorkerPool) SetSender(s Sender) { wp.sender = s }

// Start launches the worker goroutines. They exit when ctx is cancelled.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

// Notify implements booking.Notifier. Never blocks: when the queue is full
// the event is dropped with a log line.
func (wp *WorkerPool) Notify(event booking.EventType, r booking.Reservation) {
	switch event {
	case booking.EventApproved, booking.EventAutoApproved, booking.EventRejected, booking.EventCancelled:
	default:
		return
	}

	select {
	case wp.jobs <- job{event: event, reservation: r}:
	default:
		log.Printf("notify: queue full, dropping %s for reservation %s", event, r.ID)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	for {
		select {
		case j := <-wp.jobs:
			wp.deliver(ctx, j)
		case <-ctx.Done():
			log.Printf("notify: worker %d shutting down", id)
			return
		}
	}
}

func (wp *WorkerPool) deliver(ctx context.Context, j job) {
	if wp.options == nil {
		return
	}

	subs, err := wp.subs.ListSubscriptionsByRequester(ctx, j.reservation.RequesterID)
	if err != nil {
		log.Printf("notify: failed to list subscriptions for %s: %v", j.reservation.RequesterID, err)
		return
	}
	if len(subs) == 0 {
		return
	}

	payload := []byte(message(j.event, j.reservation))
	for _, sub := range subs {
		wp.send(ctx, sub, payload)
	}
}

func (wp *WorkerPool) send(ctx context.Context, sub Subscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.options)
	if err != nil {
		log.Printf("notify: error sending to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// 410 Gone means the subscription expired; clean it up.
	if resp.StatusCode == http.StatusGone {
		if err := wp.subs.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("notify: failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

func message(event booking.EventType, r booking.Reservation) string {
	window := fmt.Sprintf("%s - %s",
		r.StartTime.Format("Jan 2 15:04"), r.EndTime.Format("15:04"))

	switch event {
	case booking.EventApproved, booking.EventAutoApproved:
		return fmt.Sprintf("Your reservation for %s (%s) was approved.", r.ResourceID, window)
	case booking.EventRejected:
		if r.RejectionReason != "" {
			return fmt.Sprintf("Your reservation for %s (%s) was rejected: %s", r.ResourceID, window, r.RejectionReason)
		}
		return fmt.Sprintf("Your reservation for %s (%s) was rejected.", r.ResourceID, window)
	case booking.EventCancelled:
		return fmt.Sprintf("Your reservation for %s (%s) was cancelled.", r.ResourceID, window)
	default:
		return fmt.Sprintf("Your reservation for %s (%s) was updated.", r.ResourceID, window)
	}
}
