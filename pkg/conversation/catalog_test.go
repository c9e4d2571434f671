package conversation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mohammaddehghani/fuelrep/pkg/conversation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ResolvesLabelsAndKeywords(t *testing.T) {
	c := conversation.DefaultCatalog()

	assert.Equal(t, conversation.CmdRegister, c.Resolve(c.Label(conversation.CmdRegister)))
	assert.Equal(t, conversation.CmdBackup, c.Resolve(c.Label(conversation.CmdBackup)))
	assert.Equal(t, conversation.CmdStart, c.Resolve("/start"))
	assert.Equal(t, conversation.CmdCancel, c.Resolve("/cancel"))
	assert.Equal(t, conversation.CmdCancel, c.Resolve("back"))
	assert.Equal(t, conversation.CmdYes, c.Resolve("Yes"))
	assert.Equal(t, conversation.CmdNone, c.Resolve("anything else"))
	assert.Equal(t, conversation.CmdNone, c.Resolve(""))
}

func TestCatalog_TextFallsBackToID(t *testing.T) {
	c := conversation.DefaultCatalog()
	assert.Equal(t, "no_such_message", c.Text("no_such_message"))
}

func TestLoadCatalog_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	override := `
labels:
  register: "ثبت سوختگیری 🚗"
messages:
  welcome: "به بات خوش آمدی! ⛽️"
`
	require.NoError(t, os.WriteFile(path, []byte(override), 0o644))

	c, err := conversation.LoadCatalog(path)
	require.NoError(t, err)

	// Overridden entries take effect and keep resolving.
	assert.Equal(t, "به بات خوش آمدی! ⛽️", c.Text("welcome"))
	assert.Equal(t, conversation.CmdRegister, c.Resolve("ثبت سوختگیری 🚗"))

	// Untouched entries keep their defaults.
	assert.Equal(t, conversation.DefaultCatalog().Text("unknown"), c.Text("unknown"))
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := conversation.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
