package fuelrep_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohammaddehghani/fuelrep"
	"github.com/mohammaddehghani/fuelrep/pkg/adapters/memory"
	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// fakeTransport records everything the bot sends, keyed by session.
type fakeTransport struct {
	mu    sync.Mutex
	texts map[string][]string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{texts: map[string][]string{}}
}

func (f *fakeTransport) SendText(ctx context.Context, sessionID, text string, keyboard [][]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts[sessionID] = append(f.texts[sessionID], text)
	return nil
}

func (f *fakeTransport) SendDocument(ctx context.Context, sessionID string, doc domain.Attachment) error {
	return nil
}

func (f *fakeTransport) SendPhoto(ctx context.Context, sessionID string, photo domain.Attachment) error {
	return nil
}

func TestBot_RegisterFlow(t *testing.T) {
	ctx := context.Background()
	transport := newFakeTransport()
	entries := memory.NewEntryStore()
	bot := fuelrep.New(transport, fuelrep.WithEntryStore(entries))

	labels := conversation.DefaultCatalog().Labels
	for _, text := range []string{
		"/start",
		labels[conversation.CmdRegister],
		"12500",
		"35.5",
		labels[conversation.CmdYes],
	} {
		require.NoError(t, bot.HandleUpdate(ctx, domain.Update{SessionID: "42", Text: text}))
	}

	stored, err := entries.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 12500.0, stored[0].Odometer)
	assert.Equal(t, 35.5, stored[0].Volume)

	replies := transport.texts["42"]
	require.NotEmpty(t, replies)
	assert.Contains(t, replies[len(replies)-1], "#1")
}

func TestBot_DefaultsToMemoryStores(t *testing.T) {
	transport := newFakeTransport()
	bot := fuelrep.New(transport)

	err := bot.HandleUpdate(context.Background(), domain.Update{SessionID: "1", Text: "/start"})
	require.NoError(t, err)
	assert.NotEmpty(t, transport.texts["1"])
}
