package plugin

import (
	"errors"

	"github.com/rs/zerolog"

	"vizd/internal/build"
	"vizd/internal/common/fsutil"
)

// Config for the loader.
type Config struct {
	Logger *zerolog.Logger
}

// Loader maps compiled artifacts.
type Loader struct {
	log zerolog.Logger
}

// NewLoader constructs a Loader.
func NewLoader(cfg Config) *Loader {
	l := &Loader{log: zerolog.Nop()}
	if cfg.Logger != nil {
		l.log = cfg.Logger.With().Str("component", "plugin").Logger()
	}
	return l
}

// Load maps the artifact of a successful compilation result.
func (l *Loader) Load(res build.Result) (*Module, error) {
	if !res.Success {
		return nil, ErrLoad(res.OutputFile, errors.New("compilation result is not successful"))
	}
	return l.Open(res.OutputFile)
}

// Open maps the artifact at path, resolves EntrySymbol and binds its table.
func (l *Loader) Open(path string) (*Module, error) {
	if !fsutil.IsRegularFile(path) {
		return nil, ErrLoad(path, errors.New("artifact does not exist"))
	}
	h, err := openLibrary(path)
	if err != nil {
		l.log.Warn().Err(err).Str("path", path).Msg("dlopen failed")
		return nil, ErrLoad(path, err)
	}
	entry, err := lookupSymbol(h, EntrySymbol)
	if err != nil || entry == 0 {
		_ = closeLibrary(h)
		if err == nil {
			err = errors.New("null address")
		}
		l.log.Warn().Err(err).Str("path", path).Msg("entry symbol missing")
		return nil, symbolNotFoundError{path: path, symbol: EntrySymbol, err: err}
	}
	vt, err := bindTable(entry)
	if err != nil {
		_ = closeLibrary(h)
		l.log.Warn().Err(err).Str("path", path).Msg("plugin table rejected")
		return nil, ErrLoad(path, err)
	}
	l.log.Info().Str("path", path).Msg("module loaded")
	return newModule(path, vt, func() error { return closeLibrary(h) }), nil
}
