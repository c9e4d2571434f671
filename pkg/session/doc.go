/*
Package session provides serialized, per-session-ID access to conversation
state.

The Manager guards every read-modify-write of a session behind a mutex keyed
by session ID (reference-counted so idle locks are garbage collected), which
is what makes the conversation machine safe under concurrent updates for the
same chat. An optional DistributedLocker extends the guarantee across
replicas that share a session store.
*/
package session
