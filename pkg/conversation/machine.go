package conversation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"log/slog"

	"github.com/mohammaddehghani/fuelrep/internal/logging"
	"github.com/mohammaddehghani/fuelrep/pkg/analytics"
	"github.com/mohammaddehghani/fuelrep/pkg/csvio"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
)

const (
	// BackupFileName is the name of the exported CSV document.
	BackupFileName = "fuel_backup.csv"

	// ChartFileName is the name of the rendered trend image.
	ChartFileName = "consumption_chart.png"
)

// Machine decides state transitions for one inbound update. It mutates the
// session it is handed, performs side effects through the injected ports, and
// returns the outbound replies. It holds no session state of its own, so one
// Machine serves every session; the caller serializes access per session ID.
type Machine struct {
	entries  ports.EntryStore
	fetcher  ports.FileFetcher
	renderer ports.ChartRenderer
	admins   domain.Allowlist
	catalog  *Catalog
	logger   *slog.Logger
}

// MachineOption configures the Machine.
type MachineOption func(*Machine)

// WithFetcher wires the document fetcher used by the CSV import flow.
func WithFetcher(f ports.FileFetcher) MachineOption {
	return func(m *Machine) { m.fetcher = f }
}

// WithRenderer wires the chart renderer used by the chart command.
func WithRenderer(r ports.ChartRenderer) MachineOption {
	return func(m *Machine) { m.renderer = r }
}

// WithAllowlist restricts backup and chart to the given session IDs.
// An empty allowlist leaves both commands open.
func WithAllowlist(a domain.Allowlist) MachineOption {
	return func(m *Machine) { m.admins = a }
}

// WithCatalog overrides the default command/message catalog.
func WithCatalog(c *Catalog) MachineOption {
	return func(m *Machine) { m.catalog = c }
}

// WithLogger configures a logger for the Machine.
func WithLogger(logger *slog.Logger) MachineOption {
	return func(m *Machine) { m.logger = logger }
}

// NewMachine creates a conversation machine over the given entry store.
func NewMachine(entries ports.EntryStore, opts ...MachineOption) *Machine {
	m := &Machine{
		entries: entries,
		admins:  domain.NewAllowlist(),
		catalog: DefaultCatalog(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Catalog exposes the active catalog, mostly so hosts can reuse its menus.
func (m *Machine) Catalog() *Catalog {
	return m.catalog
}

// Handle applies one inbound update to the session.
//
// Every path leaves the session in a well-defined state: idle, or the same
// retry-eligible step. The returned error reports storage/render faults for
// logging and metrics; a user-facing reply is produced regardless, so callers
// should deliver the replies even when err is non-nil.
func (m *Machine) Handle(ctx context.Context, sess *domain.Session, up domain.Update) ([]domain.Reply, error) {
	cmd := m.catalog.Resolve(up.Text)

	// Cancel and start take absolute priority, regardless of current state.
	switch cmd {
	case CmdCancel:
		sess.Reset()
		return m.menuReply("canceled"), nil
	case CmdStart:
		sess.Reset()
		return m.menuReply("welcome"), nil
	}

	switch sess.Step {
	case domain.StepIdle:
		return m.handleIdle(ctx, sess, cmd)
	case domain.StepAskOdometer:
		return m.handleAskOdometer(sess, up.Text)
	case domain.StepAskVolume:
		return m.handleAskVolume(sess, up.Text)
	case domain.StepAwaitConfirmation:
		return m.handleConfirmation(ctx, sess, cmd)
	case domain.StepDataMenu:
		return m.handleDataMenu(sess, cmd)
	case domain.StepAwaitCSV:
		return m.handleCSV(ctx, sess, up)
	case domain.StepAwaitDeleteID:
		return m.handleDeleteID(ctx, sess, up.Text)
	default:
		// Unknown persisted step (e.g. stale store after a downgrade):
		// recover rather than wedge the session.
		m.logger.Warn("resetting session with unknown step", "session_id", sess.ID, "step", sess.Step)
		sess.Reset()
		return m.menuReply("unknown"), nil
	}
}

func (m *Machine) handleIdle(ctx context.Context, sess *domain.Session, cmd Command) ([]domain.Reply, error) {
	switch cmd {
	case CmdRegister:
		sess.Step = domain.StepAskOdometer
		sess.Draft = domain.Draft{}
		return []domain.Reply{domain.TextReply(m.catalog.Text("ask_odometer"), m.catalog.CancelKeyboard())}, nil

	case CmdBackup:
		if !m.admins.Allows(sess.ID) {
			return m.menuReply("denied"), nil
		}
		return m.backup(ctx)

	case CmdChart:
		if !m.admins.Allows(sess.ID) {
			return m.menuReply("denied"), nil
		}
		return m.chart(ctx)

	case CmdData:
		sess.Step = domain.StepDataMenu
		return []domain.Reply{domain.TextReply(m.catalog.Text("data_menu"), m.catalog.DataMenu())}, nil

	default:
		return m.menuReply("unknown"), nil
	}
}

func (m *Machine) handleAskOdometer(sess *domain.Session, text string) ([]domain.Reply, error) {
	value, err := parseNumber(text)
	if err != nil || value < 0 {
		return []domain.Reply{domain.TextReply(m.catalog.Text("bad_number"), m.catalog.CancelKeyboard())}, nil
	}
	sess.Draft.Odometer = value
	sess.Draft.HasOdometer = true
	sess.Step = domain.StepAskVolume
	return []domain.Reply{domain.TextReply(m.catalog.Text("ask_volume"), m.catalog.CancelKeyboard())}, nil
}

func (m *Machine) handleAskVolume(sess *domain.Session, text string) ([]domain.Reply, error) {
	value, err := parseNumber(text)
	if err != nil || value <= 0 {
		return []domain.Reply{domain.TextReply(m.catalog.Text("bad_number"), m.catalog.CancelKeyboard())}, nil
	}
	sess.Draft.Volume = value
	sess.Draft.HasVolume = true
	sess.Step = domain.StepAwaitConfirmation
	summary := m.catalog.Text("confirm", sess.Draft.Odometer, sess.Draft.Volume)
	return []domain.Reply{domain.TextReply(summary, m.catalog.ConfirmKeyboard())}, nil
}

func (m *Machine) handleConfirmation(ctx context.Context, sess *domain.Session, cmd Command) ([]domain.Reply, error) {
	switch cmd {
	case CmdYes:
		draft := sess.Draft
		id, err := m.entries.Insert(ctx, draft.Odometer, draft.Volume)
		if err != nil {
			// The entry was not committed; never pretend it was.
			sess.Reset()
			return m.menuReply("storage_failed"), fmt.Errorf("insert entry: %w", err)
		}
		sess.Reset()
		return m.menuReply("saved", id), nil

	case CmdNo:
		sess.Reset()
		return m.menuReply("discarded"), nil

	default:
		return []domain.Reply{domain.TextReply(m.catalog.Text("confirm_retry"), m.catalog.ConfirmKeyboard())}, nil
	}
}

func (m *Machine) handleDataMenu(sess *domain.Session, cmd Command) ([]domain.Reply, error) {
	switch cmd {
	case CmdImport:
		sess.Step = domain.StepAwaitCSV
		return []domain.Reply{domain.TextReply(m.catalog.Text("ask_csv"), m.catalog.CancelKeyboard())}, nil
	case CmdDelete:
		sess.Step = domain.StepAwaitDeleteID
		return []domain.Reply{domain.TextReply(m.catalog.Text("ask_delete_id"), m.catalog.CancelKeyboard())}, nil
	default:
		return []domain.Reply{domain.TextReply(m.catalog.Text("data_menu"), m.catalog.DataMenu())}, nil
	}
}

func (m *Machine) handleCSV(ctx context.Context, sess *domain.Session, up domain.Update) ([]domain.Reply, error) {
	if up.Document == nil {
		return []domain.Reply{domain.TextReply(m.catalog.Text("need_csv"), m.catalog.CancelKeyboard())}, nil
	}
	if m.fetcher == nil {
		sess.Reset()
		return m.menuReply("import_bad_file", "imports are not available"), errors.New("csv import: no file fetcher configured")
	}

	data, err := m.fetcher.FetchDocument(ctx, up.Document.ID)
	if err != nil {
		sess.Reset()
		return m.menuReply("import_bad_file", err), fmt.Errorf("fetch document: %w", err)
	}

	rows, err := csvio.Decode(data)
	if err != nil {
		// User error, not a fault: surface the cause so the whole import
		// can be retried with a fixed file.
		sess.Reset()
		return m.menuReply("import_bad_file", err), nil
	}

	count, err := m.entries.BulkInsert(ctx, rows)
	if err != nil {
		// Not atomic: rows inserted before the failure stay committed.
		sess.Reset()
		return m.menuReply("import_partial", count, err), fmt.Errorf("bulk insert: %w", err)
	}
	sess.Reset()
	return m.menuReply("import_ok", count), nil
}

func (m *Machine) handleDeleteID(ctx context.Context, sess *domain.Session, text string) ([]domain.Reply, error) {
	// Single attempt: a bad id drops back to idle rather than re-prompting.
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		sess.Reset()
		return m.menuReply("delete_bad_id"), nil
	}

	removed, err := m.entries.DeleteByID(ctx, id)
	if err != nil {
		sess.Reset()
		return m.menuReply("storage_failed"), fmt.Errorf("delete entry %d: %w", id, err)
	}
	sess.Reset()
	if removed {
		return m.menuReply("deleted", id), nil
	}
	return m.menuReply("delete_missing", id), nil
}

func (m *Machine) backup(ctx context.Context) ([]domain.Reply, error) {
	entries, err := m.entries.ListAll(ctx)
	if err != nil {
		return m.menuReply("storage_failed"), fmt.Errorf("list entries: %w", err)
	}
	data, err := csvio.Encode(entries)
	if err != nil {
		return m.menuReply("backup_failed", err), fmt.Errorf("encode backup: %w", err)
	}
	return []domain.Reply{{
		Document: &domain.Attachment{
			Name:    BackupFileName,
			Content: data,
			Caption: m.catalog.Text("backup_caption"),
		},
	}}, nil
}

func (m *Machine) chart(ctx context.Context) ([]domain.Reply, error) {
	entries, err := m.entries.ListAll(ctx)
	if err != nil {
		return m.menuReply("storage_failed"), fmt.Errorf("list entries: %w", err)
	}

	trend, err := analytics.Compute(entries)
	if errors.Is(err, domain.ErrInsufficientData) {
		return m.menuReply("insufficient_data"), nil
	}
	if err != nil {
		return m.menuReply("chart_failed"), fmt.Errorf("compute trend: %w", err)
	}

	if m.renderer == nil {
		return m.menuReply("chart_failed"), errors.New("chart: no renderer configured")
	}
	image, err := m.renderer.Render(trend)
	if err != nil {
		return m.menuReply("chart_failed"), fmt.Errorf("render chart: %w", err)
	}
	return []domain.Reply{{
		Photo: &domain.Attachment{
			Name:    ChartFileName,
			Content: image,
			Caption: m.catalog.Text("chart_caption"),
		},
	}}, nil
}

// menuReply builds a text reply that also restores the main menu keyboard.
func (m *Machine) menuReply(msgID string, args ...any) []domain.Reply {
	return []domain.Reply{domain.TextReply(m.catalog.Text(msgID, args...), m.catalog.MainMenu())}
}

// parseNumber accepts the decimal formats users actually type: plain floats,
// decimal comma, and Persian or Arabic-Indic digits.
func parseNumber(text string) (float64, error) {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= '۰' && r <= '۹': // Persian digits
			return '0' + (r - '۰')
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			return '0' + (r - '٠')
		case r == ',':
			return '.'
		}
		return r
	}, strings.TrimSpace(text))
	return strconv.ParseFloat(normalized, 64)
}
