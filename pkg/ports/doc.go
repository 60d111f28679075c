/*
Package ports defines the driven ports (interfaces) for the palette engine.

These interfaces decouple the core logic from external implementations,
allowing palettes to be persisted to various storage backends and guarded by
distributed locks when multiple replicas share a store.

# Key Interfaces

  - PaletteStore: Responsible for persisting and loading palette documents.
  - DistributedLocker: Provides distributed locking for concurrent palette access.
*/
package ports
