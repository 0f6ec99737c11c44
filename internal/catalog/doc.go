// Package catalog discovers model source modules in a plugins directory.
package catalog
