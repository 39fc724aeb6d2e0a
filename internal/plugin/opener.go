package plugin

import (
	"os"
	goplugin "plugin"
)

// Library is an opened plugin library.
type Library interface {
	Lookup(symbol string) (any, error)
}

// Opener opens plugin libraries.
type Opener interface {
	Open(path string) (Library, error)
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(path string) (Library, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Library, error) { return f(path) }

// GoPluginOpener opens libraries built with -buildmode=plugin.
type GoPluginOpener struct{}

// Open implements Opener.
func (GoPluginOpener) Open(path string) (Library, error) {
	p, err := goplugin.Open(path)
	if err != nil {
		return nil, err
	}
	return goLibrary{p: p}, nil
}

type goLibrary struct {
	p *goplugin.Plugin
}

func (l goLibrary) Lookup(symbol string) (any, error) {
	return l.p.Lookup(symbol)
}

func statLibrary(path string) error {
	_, err := os.Stat(path)
	return err
}
