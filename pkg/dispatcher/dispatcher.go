package dispatcher

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/mohammaddehghani/fuelrep/internal/logging"
	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
	"github.com/mohammaddehghani/fuelrep/pkg/session"
)

// Dispatcher routes one inbound update through the conversation machine and
// forwards the resulting replies to the transport. All session access goes
// through the session manager, so transitions for one session ID apply in
// arrival order while distinct sessions proceed concurrently.
type Dispatcher struct {
	sessions  *session.Manager
	machine   *conversation.Machine
	transport ports.Transport
	logger    *slog.Logger
	metrics   *Metrics
}

// Option configures the Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithMetrics wires pre-built metrics (useful to share a registry).
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New creates a dispatcher.
func New(sessions *session.Manager, machine *conversation.Machine, transport ports.Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		sessions:  sessions,
		machine:   machine,
		transport: transport,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = NewMetrics(nil)
	}
	return d
}

// HandleUpdate processes one inbound update end to end.
//
// Updates without a message body are tolerated and dropped. The session is
// loaded (or lazily created), mutated by the machine under its per-ID lock,
// and persisted afterwards; replies are sent while the lock is held so a
// session's outbound messages keep their order too.
func (d *Dispatcher) HandleUpdate(ctx context.Context, up domain.Update) error {
	if up.Empty() {
		d.metrics.Updates.WithLabelValues(outcomeIgnored).Inc()
		return nil
	}

	start := time.Now()
	err := d.sessions.Mutate(ctx, up.SessionID, func(ctx context.Context, sess *domain.Session) error {
		replies, handleErr := d.machine.Handle(ctx, sess, up)
		if handleErr != nil {
			d.logger.Error("state machine reported a fault",
				"session_id", up.SessionID,
				"step", sess.Step,
				"err", handleErr,
			)
		}

		// Replies carry the user-facing outcome even on faults; deliver
		// them regardless.
		for _, reply := range replies {
			if err := d.send(ctx, up.SessionID, reply); err != nil {
				d.logger.Error("failed to deliver reply", "session_id", up.SessionID, "err", err)
				continue
			}
			d.metrics.Replies.Inc()
		}
		return handleErr
	})
	d.metrics.HandleDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		d.metrics.Updates.WithLabelValues(outcomeError).Inc()
		return fmt.Errorf("handle update for session %s: %w", up.SessionID, err)
	}
	d.metrics.Updates.WithLabelValues(outcomeOK).Inc()
	return nil
}

func (d *Dispatcher) send(ctx context.Context, sessionID string, reply domain.Reply) error {
	switch {
	case reply.Document != nil:
		return d.transport.SendDocument(ctx, sessionID, *reply.Document)
	case reply.Photo != nil:
		return d.transport.SendPhoto(ctx, sessionID, *reply.Photo)
	default:
		return d.transport.SendText(ctx, sessionID, reply.Text, reply.Keyboard)
	}
}
