/*
Package ports defines the driven ports (interfaces) for the fuel bot core.

These interfaces decouple the conversation machine and dispatcher from
external implementations, allowing the core to work with various storage
backends, chat transports and chart renderers.

# Key Interfaces

  - EntryStore: persists fuel observations (sqlite, memory).
  - SessionStore: persists conversation session state (memory, redis).
  - DistributedLocker: cross-replica session locking (redis).
  - Transport / FileFetcher: outbound chat primitives and document fetch.
  - ChartRenderer: turns a computed trend into an image.

The package also ships reusable contract test suites (RunSessionStoreContract,
RunEntryStoreContract) so every adapter proves the same semantics.
*/
package ports
