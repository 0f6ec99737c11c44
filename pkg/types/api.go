package types

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	// Known models, sorted by name.
	Models []Model `json:"models"`
}

// CompileRequest is the body of POST /compile.
type CompileRequest struct {
	// Model name. Defaults to the source file stem.
	// example: ballcell
	Model string `json:"model,omitempty" example:"ballcell"`
	// Source module path on the daemon host. Optional when the model was
	// discovered in the plugins directory.
	// example: /srv/vizd/plugins/ballcell.cpp
	Source string `json:"source,omitempty" example:"/srv/vizd/plugins/ballcell.cpp"`
	// Language standard override (c++14, c++17, c++20, c++23).
	// example: c++20
	Standard string `json:"standard,omitempty" example:"c++20"`
	// Extra include directories, in order.
	IncludePaths []string `json:"include_paths,omitempty"`
	// Extra compiler flags, in order.
	// example: ["-O2"]
	Flags []string `json:"flags,omitempty"`
	// Compile only; do not load and register the artifact.
	// example: false
	NoLoad bool `json:"no_load,omitempty" example:"false"`
}

// CompileResponse is the outcome of a compile attempt.
type CompileResponse struct {
	// example: ballcell
	Model string `json:"model" example:"ballcell"`
	// example: true
	Success bool `json:"success" example:"true"`
	// Descriptor state after the attempt.
	// example: loaded
	State string `json:"state" example:"loaded"`
	// Compiler exit code; -1 when no process ran.
	// example: 0
	ExitCode int `json:"exit_code" example:"0"`
	// Rendered compiler command line.
	Command    string `json:"command,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
	OutputFile string `json:"output_file,omitempty"`
	Stdout     string `json:"stdout,omitempty"`
	Stderr     string `json:"stderr,omitempty"`
	// example: 1532
	DurationMS int64            `json:"duration_ms" example:"1532"`
	Toolchain  *ToolchainStatus `json:"toolchain,omitempty"`
	// Error message on failure.
	Error string `json:"error,omitempty"`
	// Stable error kind: source_not_found, toolchain_not_found, launch_error,
	// compile_error, cancelled, load_error, symbol_not_found.
	// example: compile_error
	ErrorKind string `json:"error_kind,omitempty" example:"compile_error"`
}

// ProgressEvent is one NDJSON line streamed by POST /compile.
type ProgressEvent struct {
	// status, stdout, stderr, summary or result.
	// example: stdout
	Type string `json:"type" example:"stdout"`
	// example: Compiling... (10 lines)
	Message string `json:"message,omitempty" example:"Compiling... (10 lines)"`
	// Cumulative non-empty stdout lines.
	// example: 10
	Lines int `json:"lines,omitempty" example:"10"`
	// Set on the final result event.
	Result *CompileResponse `json:"result,omitempty"`
}

// UnloadResponse is returned by POST /models/{name}/unload.
type UnloadResponse struct {
	// example: ballcell
	Model string `json:"model" example:"ballcell"`
	// example: not_compiled
	State string `json:"state" example:"not_compiled"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Models []Model `json:"models"`
	// Last resolved toolchain, if any compile ran.
	Toolchain *ToolchainStatus `json:"toolchain,omitempty"`
	// Models with a compile in progress.
	InProgress []string `json:"in_progress"`
	// example: 12
	CompilesTotal uint64 `json:"compiles_total" example:"12"`
	// example: 2
	CompileFailuresTotal uint64 `json:"compile_failures_total" example:"2"`
	// example: 10
	LoadsTotal uint64 `json:"loads_total" example:"10"`
	// example: 0
	LoadFailuresTotal uint64 `json:"load_failures_total" example:"0"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
