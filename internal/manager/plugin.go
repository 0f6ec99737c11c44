package manager

import (
	"vizd/internal/build"
	"vizd/internal/plugin"
)

// NewPluginLoader adapts a *plugin.Loader to Loader.
func NewPluginLoader(l *plugin.Loader) Loader {
	return LoaderFunc(func(res build.Result) (Module, error) {
		mod, err := l.Load(res)
		if err != nil {
			return nil, err
		}
		return mod, nil
	})
}
