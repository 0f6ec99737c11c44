// Package manager coordinates compilation, loading and registration of model
// plugins. It is the single owner of the orchestrator, the loader and the
// registry, and of every ModelDescriptor. It is structured into small files by
// concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: Config and package defaults; New applies defaults.
//   - types.go: State, Origin, ModelDescriptor and its transition rules.
//   - errors.go: error types and helpers (IsCompileInProgress, IsInvalidName ...).
//   - artifacts.go: versioned artifact paths and generation seeding.
//   - compile.go: Compile, the compile -> load -> register sequence.
//   - lookup.go: Lookup, Create and model listing.
//   - unload.go: Unload of dynamic models.
//   - discover.go: seeding descriptors from the plugins directory.
//   - status_report.go: Status for /status.
//   - sanity.go: toolchain sanity report.
//   - metrics.go: Prometheus compile/load metrics.
//   - events.go, eventpub_memory.go: lifecycle events.
//
// External packages should use public methods only (New, Compile, Lookup,
// Create, Unload, ListModels, Status, SanityCheck).
package manager
