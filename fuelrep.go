package fuelrep

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammaddehghani/fuelrep/internal/logging"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/chart"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/memory"
	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/mohammaddehghani/fuelrep/pkg/dispatcher"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
	"github.com/mohammaddehghani/fuelrep/pkg/session"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// Bot is the high-level entry point for the fuelrep library.
// It wires the session manager, conversation machine, and dispatcher into a
// single update handler; the caller supplies the transport (where replies go)
// and chooses storage through options.
type Bot struct {
	entries  ports.EntryStore
	sessions ports.SessionStore
	locker   ports.DistributedLocker
	fetcher  ports.FileFetcher
	renderer ports.ChartRenderer
	admins   domain.Allowlist
	catalog  *conversation.Catalog
	logger   *slog.Logger
	registry prometheus.Registerer

	dispatcher *dispatcher.Dispatcher
}

// Option defines a functional option for configuring the Bot.
type Option func(*Bot)

// WithEntryStore injects a fuel entry store (default: in-memory).
func WithEntryStore(s ports.EntryStore) Option {
	return func(b *Bot) { b.entries = s }
}

// WithSessionStore injects a session store (default: in-memory).
func WithSessionStore(s ports.SessionStore) Option {
	return func(b *Bot) { b.sessions = s }
}

// WithLocker enables cross-process session locking. Only needed when more
// than one bot instance shares the session store.
func WithLocker(l ports.DistributedLocker) Option {
	return func(b *Bot) { b.locker = l }
}

// WithFileFetcher injects the document downloader used for CSV import.
// If the transport also implements ports.FileFetcher it is used automatically.
func WithFileFetcher(f ports.FileFetcher) Option {
	return func(b *Bot) { b.fetcher = f }
}

// WithRenderer overrides the chart renderer.
func WithRenderer(r ports.ChartRenderer) Option {
	return func(b *Bot) { b.renderer = r }
}

// WithAllowlist restricts data operations to the listed session IDs.
func WithAllowlist(a domain.Allowlist) Option {
	return func(b *Bot) { b.admins = a }
}

// WithCatalog overrides the reply catalog (labels and message templates).
func WithCatalog(c *conversation.Catalog) Option {
	return func(b *Bot) { b.catalog = c }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithMetricsRegisterer registers dispatcher metrics with the given registry.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(b *Bot) { b.registry = reg }
}

// New assembles a Bot around the given transport.
func New(transport ports.Transport, opts ...Option) *Bot {
	b := &Bot{}
	for _, opt := range opts {
		opt(b)
	}

	if b.logger == nil {
		b.logger = logging.NewNop()
	}
	if b.entries == nil {
		b.entries = memory.NewEntryStore()
	}
	if b.sessions == nil {
		b.sessions = memory.NewSessionStore()
	}
	if b.renderer == nil {
		b.renderer = chart.NewRenderer()
	}
	if b.catalog == nil {
		b.catalog = conversation.DefaultCatalog()
	}
	if b.fetcher == nil {
		if f, ok := transport.(ports.FileFetcher); ok {
			b.fetcher = f
		}
	}

	machine := conversation.NewMachine(b.entries,
		conversation.WithFetcher(b.fetcher),
		conversation.WithRenderer(b.renderer),
		conversation.WithAllowlist(b.admins),
		conversation.WithCatalog(b.catalog),
		conversation.WithLogger(b.logger),
	)

	sessionOpts := []session.Option{session.WithLogger(b.logger)}
	if b.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(b.locker))
	}
	manager := session.NewManager(b.sessions, sessionOpts...)

	dispatchOpts := []dispatcher.Option{dispatcher.WithLogger(b.logger)}
	if b.registry != nil {
		dispatchOpts = append(dispatchOpts, dispatcher.WithMetrics(dispatcher.NewMetrics(b.registry)))
	}
	b.dispatcher = dispatcher.New(manager, machine, transport, dispatchOpts...)

	return b
}

// HandleUpdate routes one inbound update through the conversation machine.
// Safe for concurrent use; updates for the same session are serialized.
func (b *Bot) HandleUpdate(ctx context.Context, up domain.Update) error {
	return b.dispatcher.HandleUpdate(ctx, up)
}
