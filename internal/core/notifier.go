package core

import "context"

// Notifier delivers customer-facing messages. Calls are fire-and-forget from
// the caller's perspective: delivery failures are logged by the implementation
// and never fail the triggering operation.
type Notifier interface {
	OrderReady(ctx context.Context, recipientEmail, recipientName string, order *Order) error
}

// NopNotifier discards every notification. Used in tests and when no mail
// transport is configured.
type NopNotifier struct{}

func (NopNotifier) OrderReady(context.Context, string, string, *Order) error { return nil }
