package domain

// Allowlist is a static set of privileged session IDs, loaded once at startup
// and immutable for the process lifetime. An empty allowlist means open
// access.
type Allowlist map[string]struct{}

// NewAllowlist builds an allowlist from session IDs, ignoring empty strings.
func NewAllowlist(ids ...string) Allowlist {
	a := make(Allowlist, len(ids))
	for _, id := range ids {
		if id != "" {
			a[id] = struct{}{}
		}
	}
	return a
}

// Allows reports whether the session may use privileged commands.
func (a Allowlist) Allows(sessionID string) bool {
	if len(a) == 0 {
		return true
	}
	_, ok := a[sessionID]
	return ok
}
