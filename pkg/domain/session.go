package domain

// Step identifies the conversation state a session is in.
// The set is closed: a session is always in exactly one of these.
type Step string

const (
	StepIdle              Step = "idle"
	StepAskOdometer       Step = "ask_odometer"
	StepAskVolume         Step = "ask_volume"
	StepAwaitConfirmation Step = "await_confirmation"
	StepDataMenu          Step = "data_menu"
	StepAwaitCSV          Step = "await_csv"
	StepAwaitDeleteID     Step = "await_delete_id"
)

// Draft is a partially filled fuel entry collected across the register flow.
// Fields are only meaningful while the Has flags say so; the whole draft is
// discarded whenever the session returns to idle or switches flows.
type Draft struct {
	Odometer    float64
	Volume      float64
	HasOdometer bool
	HasVolume   bool
}

// Session is one chat identity's conversational context, keyed by session ID.
// It is exclusively owned by the conversation machine while a lock for its ID
// is held; it is never shared across sessions.
type Session struct {
	ID    string
	Step  Step
	Draft Draft
}

// NewSession creates a fresh idle session.
func NewSession(id string) *Session {
	return &Session{ID: id, Step: StepIdle}
}

// Reset returns the session to idle and discards any draft.
func (s *Session) Reset() {
	s.Step = StepIdle
	s.Draft = Draft{}
}
