// Package plugin maps compiled model artifacts into the process and adapts
// their C function table (include/vizplugin/vizplugin.h) to visualizer.Impl.
//
// Loading uses dlopen through purego, so the daemon builds without cgo.
// A Module stays mapped until Unload, which is refused while instances
// created from it are alive.
package plugin
