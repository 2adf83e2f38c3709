package mail

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultSendTimeout bounds a single background delivery.
const DefaultSendTimeout = 30 * time.Second

// Notifier sends messages in the background. Delivery failures are logged
// and never reach the caller.
type Notifier struct {
	Mailer  Mailer
	Logger  *slog.Logger
	Timeout time.Duration

	wg sync.WaitGroup
}

func NewNotifier(m Mailer, logger *slog.Logger) *Notifier {
	return &Notifier{Mailer: m, Logger: logger, Timeout: DefaultSendTimeout}
}

// Notify queues msg for delivery and returns immediately.
func (n *Notifier) Notify(msg Message) {
	timeout := n.Timeout
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := n.Mailer.Send(ctx, msg); err != nil {
			n.Logger.Warn("background mail delivery failed",
				slog.String("subject", msg.Subject),
				slog.Any("error", err),
			)
		}
	}()
}

// Wait blocks until every queued message has been attempted.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
