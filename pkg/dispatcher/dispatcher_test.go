package dispatcher_test

import (
	"context"
	"sync"
	"testing"

	"github.com/mohammaddehghani/fuelrep/pkg/adapters/memory"
	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/mohammaddehghani/fuelrep/pkg/dispatcher"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/mohammaddehghani/fuelrep/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingTransport captures outbound messages per session.
type recordingTransport struct {
	mu    sync.Mutex
	texts map[string][]string
	docs  map[string][]domain.Attachment
}

func newRecordingTransport() *recordingTransport {
	return &recordingTransport{
		texts: make(map[string][]string),
		docs:  make(map[string][]domain.Attachment),
	}
}

func (t *recordingTransport) SendText(ctx context.Context, sessionID, text string, keyboard [][]string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.texts[sessionID] = append(t.texts[sessionID], text)
	return nil
}

func (t *recordingTransport) SendDocument(ctx context.Context, sessionID string, doc domain.Attachment) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.docs[sessionID] = append(t.docs[sessionID], doc)
	return nil
}

func (t *recordingTransport) SendPhoto(ctx context.Context, sessionID string, photo domain.Attachment) error {
	return nil
}

func (t *recordingTransport) sent(sessionID string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.texts[sessionID]))
	copy(out, t.texts[sessionID])
	return out
}

func newTestDispatcher(t *testing.T) (*dispatcher.Dispatcher, *memory.EntryStore, *recordingTransport) {
	t.Helper()
	entries := memory.NewEntryStore()
	transport := newRecordingTransport()
	machine := conversation.NewMachine(entries)
	sessions := session.NewManager(memory.NewSessionStore())
	d := dispatcher.New(sessions, machine, transport)
	return d, entries, transport
}

func TestHandleUpdate_EmptyUpdateIsNoOp(t *testing.T) {
	d, _, transport := newTestDispatcher(t)

	err := d.HandleUpdate(context.Background(), domain.Update{SessionID: "42"})
	require.NoError(t, err)
	assert.Empty(t, transport.sent("42"))
}

func TestHandleUpdate_FullRegisterFlow(t *testing.T) {
	d, entries, transport := newTestDispatcher(t)
	ctx := context.Background()
	catalog := conversation.DefaultCatalog()

	inputs := []string{
		catalog.Label(conversation.CmdRegister),
		"12000",
		"35",
		catalog.Label(conversation.CmdYes),
	}
	for _, in := range inputs {
		require.NoError(t, d.HandleUpdate(ctx, domain.Update{SessionID: "42", Text: in}))
	}

	stored, err := entries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 12000.0, stored[0].Odometer)

	sent := transport.sent("42")
	require.Len(t, sent, len(inputs))
	assert.Contains(t, sent[len(sent)-1], "#1")
}

func TestHandleUpdate_SessionsDoNotInterfere(t *testing.T) {
	d, entries, _ := newTestDispatcher(t)
	ctx := context.Background()
	catalog := conversation.DefaultCatalog()

	// Two chats run the register flow concurrently with different values.
	flows := map[string][]string{
		"alice": {catalog.Label(conversation.CmdRegister), "1000", "10.5", catalog.Label(conversation.CmdYes)},
		"bob":   {catalog.Label(conversation.CmdRegister), "2000", "20.5", catalog.Label(conversation.CmdYes)},
	}

	var wg sync.WaitGroup
	for id, inputs := range flows {
		wg.Add(1)
		go func(id string, inputs []string) {
			defer wg.Done()
			for _, in := range inputs {
				assert.NoError(t, d.HandleUpdate(ctx, domain.Update{SessionID: id, Text: in}))
			}
		}(id, inputs)
	}
	wg.Wait()

	stored, err := entries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Each draft survived intact: no cross-session mixing of values.
	byOdometer := map[float64]float64{}
	for _, e := range stored {
		byOdometer[e.Odometer] = e.Volume
	}
	assert.Equal(t, 10.5, byOdometer[1000])
	assert.Equal(t, 20.5, byOdometer[2000])
}

func TestHandleUpdate_BackupSendsDocument(t *testing.T) {
	d, entries, transport := newTestDispatcher(t)
	ctx := context.Background()
	_, err := entries.Insert(ctx, 100, 40)
	require.NoError(t, err)

	catalog := conversation.DefaultCatalog()
	require.NoError(t, d.HandleUpdate(ctx, domain.Update{
		SessionID: "42",
		Text:      catalog.Label(conversation.CmdBackup),
	}))

	docs := transport.docs["42"]
	require.Len(t, docs, 1)
	assert.Equal(t, conversation.BackupFileName, docs[0].Name)
	assert.NotEmpty(t, docs[0].Content)
}

func TestHandleUpdate_StateSurvivesAcrossUpdates(t *testing.T) {
	d, _, transport := newTestDispatcher(t)
	ctx := context.Background()
	catalog := conversation.DefaultCatalog()

	require.NoError(t, d.HandleUpdate(ctx, domain.Update{SessionID: "42", Text: catalog.Label(conversation.CmdRegister)}))
	require.NoError(t, d.HandleUpdate(ctx, domain.Update{SessionID: "42", Text: "garbage"}))

	sent := transport.sent("42")
	require.Len(t, sent, 2)
	// Still in the odometer prompt: the second reply is the re-prompt.
	assert.Equal(t, catalog.Text("bad_number"), sent[1])
}
