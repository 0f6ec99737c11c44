package types

// Model describes a model known to the daemon, built-in or dynamic.
type Model struct {
	// Unique model name.
	// example: ballcell
	Name string `json:"name" example:"ballcell"`
	// Lifecycle state: not_compiled, compiling, compiled, compile_failed, loaded, load_failed.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// builtin or dynamic.
	// example: dynamic
	Origin string `json:"origin" example:"dynamic"`
	// Source module path for dynamic models.
	// example: /srv/vizd/plugins/ballcell.cpp
	SourcePath string `json:"source_path,omitempty" example:"/srv/vizd/plugins/ballcell.cpp"`
	// Compiled artifact path, when one exists.
	// example: /var/cache/vizd/artifacts/ballcell/ballcell.3.so
	ArtifactPath string `json:"artifact_path,omitempty" example:"/var/cache/vizd/artifacts/ballcell/ballcell.3.so"`
	// Artifact generation of the current descriptor.
	// example: 3
	Generation int `json:"generation,omitempty" example:"3"`
	// Whether Create currently succeeds for this name.
	// example: true
	Registered bool `json:"registered" example:"true"`
	// Failure message for failed states.
	Error string `json:"error,omitempty"`
	// Last state change (unix seconds).
	// example: 1700000000
	UpdatedUnix int64 `json:"updated_unix" example:"1700000000"`
}

// ToolchainStatus reports the compiler the daemon resolves.
type ToolchainStatus struct {
	// Absolute compiler path.
	// example: /usr/bin/clang++
	Compiler string `json:"compiler,omitempty" example:"/usr/bin/clang++"`
	// True when the compiler is the toolchain bundled with the application.
	// example: false
	Bundled bool `json:"bundled" example:"false"`
	// Sysroot of a bundled toolchain.
	Sysroot string `json:"sysroot,omitempty"`
	// Language standard used when a request does not override it.
	// example: c++17
	Standard string `json:"standard,omitempty" example:"c++17"`
	// Resolution error, if no compiler was found.
	Error string `json:"error,omitempty"`
}
