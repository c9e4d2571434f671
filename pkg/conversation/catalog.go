package conversation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is a canonical identifier for a top-level user action. Surface
// strings (button labels, localized text) map onto these; the machine only
// ever sees commands.
type Command string

const (
	CmdStart    Command = "start"
	CmdRegister Command = "register"
	CmdBackup   Command = "backup"
	CmdChart    Command = "chart"
	CmdData     Command = "data"
	CmdImport   Command = "import"
	CmdDelete   Command = "delete"
	CmdCancel   Command = "cancel" // also "back"
	CmdYes      Command = "yes"
	CmdNo       Command = "no"
	CmdNone     Command = "" // unrecognized text
)

// Catalog maps canonical commands to their surface strings and holds the
// user-facing message templates. Both maps can be partially overridden from a
// YAML file, which is how the bot is localized without touching the core.
type Catalog struct {
	Labels   map[Command]string `yaml:"labels"`
	Messages map[string]string  `yaml:"messages"`
}

// DefaultCatalog returns the built-in English catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Labels: map[Command]string{
			CmdRegister: "⛽ Register refill",
			CmdChart:    "📊 Consumption chart",
			CmdBackup:   "📦 Fuel backup",
			CmdData:     "🗂 Data management",
			CmdImport:   "📥 Import CSV",
			CmdDelete:   "🗑 Delete entry",
			CmdCancel:   "🔙 Back",
			CmdYes:      "✅ Yes",
			CmdNo:       "❌ No",
		},
		Messages: map[string]string{
			"welcome":           "Welcome to the fuel bot! ⛽",
			"unknown":           "I didn't understand that. Pick an option from the menu.",
			"canceled":          "Okay, back to the main menu.",
			"ask_odometer":      "Enter the current odometer reading:",
			"ask_volume":        "Enter the liters dispensed:",
			"bad_number":        "That doesn't look like a number. Please try again.",
			"confirm":           "Odometer: %.1f\nVolume: %.1f L\nSave this refill?",
			"confirm_retry":     "Please answer yes or no.",
			"saved":             "Refill #%d saved ✅",
			"discarded":         "Refill discarded.",
			"denied":            "You don't have access to this command.",
			"storage_failed":    "Something went wrong while accessing storage. Please try again later.",
			"backup_caption":    "📦 Fuel backup (CSV)",
			"backup_failed":     "❌ Could not prepare the backup: %v",
			"insufficient_data": "Not enough data for a chart yet — register at least 5 refills first.",
			"chart_caption":     "📊 Consumption trend",
			"chart_failed":      "❌ Could not render the chart.",
			"data_menu":         "Data management — what would you like to do?",
			"ask_csv":           "Send the CSV file to import (odometer and volume columns required).",
			"need_csv":          "Please attach a CSV file, or go back.",
			"import_ok":         "Imported %d entries ✅",
			"import_partial":    "Import stopped after %d entries: %v",
			"import_bad_file":   "❌ Could not read that file: %v",
			"ask_delete_id":     "Enter the id of the entry to delete:",
			"delete_bad_id":     "That is not a valid entry id.",
			"deleted":           "Entry #%d deleted.",
			"delete_missing":    "No entry with id %d was found.",
		},
	}
}

// LoadCatalog reads a YAML override file and merges it over the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := DefaultCatalog()
	for cmd, label := range override.Labels {
		c.Labels[cmd] = label
	}
	for key, msg := range override.Messages {
		c.Messages[key] = msg
	}
	return c, nil
}

// Label returns the surface string for a command.
func (c *Catalog) Label(cmd Command) string {
	return c.Labels[cmd]
}

// Text formats the message template with the given id.
func (c *Catalog) Text(id string, args ...any) string {
	msg, ok := c.Messages[id]
	if !ok {
		return id
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Resolve maps inbound text to a canonical command. Button labels match
// exactly (after trimming); a few bare keywords and slash commands are always
// recognized so users who type instead of tapping are not stuck.
func (c *Catalog) Resolve(text string) Command {
	text = strings.TrimSpace(text)
	if text == "" {
		return CmdNone
	}
	for cmd, label := range c.Labels {
		if text == label {
			return cmd
		}
	}
	switch strings.ToLower(text) {
	case "/start", "start":
		return CmdStart
	case "/cancel", "cancel", "back":
		return CmdCancel
	case "yes", "y":
		return CmdYes
	case "no", "n":
		return CmdNo
	}
	return CmdNone
}

// MainMenu is the 2-D keyboard shown whenever the session is idle.
func (c *Catalog) MainMenu() [][]string {
	return [][]string{
		{c.Label(CmdRegister), c.Label(CmdChart)},
		{c.Label(CmdBackup), c.Label(CmdData)},
	}
}

// DataMenu is the submenu keyboard for the data management flow.
func (c *Catalog) DataMenu() [][]string {
	return [][]string{
		{c.Label(CmdImport), c.Label(CmdDelete)},
		{c.Label(CmdCancel)},
	}
}

// ConfirmKeyboard is the yes/no keyboard for the register confirmation.
func (c *Catalog) ConfirmKeyboard() [][]string {
	return [][]string{{c.Label(CmdYes), c.Label(CmdNo)}}
}

// CancelKeyboard offers only the way out, for the middle of a flow.
func (c *Catalog) CancelKeyboard() [][]string {
	return [][]string{{c.Label(CmdCancel)}}
}
