/*
Package conversation implements the per-session state machine that turns a
sequence of independent inbound messages into coherent multi-turn
transactions: registering a refill, exporting/importing CSV history, deleting
entries and requesting the consumption chart.

The Machine is stateless across calls — all conversational state lives in the
domain.Session it is handed — and performs its side effects through the ports
package, so it is fully unit-testable with fakes. The Catalog maps canonical
commands to surface strings and holds every user-facing message, overridable
from YAML for localization.
*/
package conversation
