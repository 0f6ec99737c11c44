package manager

import (
	"github.com/rs/zerolog"

	"vizd/internal/toolchain"
	"vizd/internal/visualizer"
)

// Default artifact directory relative to the working directory, used when
// Config.ArtifactsDir is empty.
const defaultArtifactsDir = "artifacts"

// Config encapsulates all tunables for Manager construction.
type Config struct {
	// Compiler runs compile attempts; required.
	Compiler Compiler
	// Loader maps artifacts; nil refuses every load with a LoadError.
	Loader Loader
	// Registry is shared with callers that create visualizers. Nil creates an
	// empty one. Names already registered become built-in descriptors.
	Registry *visualizer.Registry
	// PluginsDir is scanned by Discover for source modules.
	PluginsDir string
	// ArtifactsDir receives versioned artifacts.
	ArtifactsDir string
	// Toolchain and Preferred back SanityCheck. Nil reports no toolchain.
	Toolchain toolchain.Source
	Preferred string
	// Standard is applied to requests that do not override it.
	Standard string
	// Publisher receives lifecycle events in addition to the debug log.
	Publisher EventPublisher
	Logger    *zerolog.Logger
}
