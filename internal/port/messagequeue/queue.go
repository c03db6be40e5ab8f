// Package messagequeue defines the message queue port for reservation
// lifecycle events and the operator audit channel.
package messagequeue

import "context"

// Handler processes a single message. Returning an error causes the
// message to be redelivered.
type Handler func(subject string, data []byte) error

// Queue is the port interface for the event feed.
type Queue interface {
	Publish(ctx context.Context, subject string, data []byte) error
	Subscribe(ctx context.Context, subject string, handler Handler) (func(), error)
	Close() error
}
