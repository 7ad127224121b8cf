package services

import (
	"fmt"

	"github.com/fileforge/convertd/internal/core/domain"
	"github.com/fileforge/convertd/internal/core/ports/driven"
)

// Binding is the resolved target of a dispatch lookup: the capability
// to invoke and the file extension for its output.
type Binding struct {
	Capability driven.Capability
	OutputExt  string
}

type pairKey struct {
	source string
	target string
}

// Table maps format pairs to capabilities. It is built once at process
// start and read-only thereafter; Lookup never mutates it, so it is
// safe for concurrent requests without locking.
type Table struct {
	pairs map[pairKey]driven.Capability
	image driven.Capability
}

// NewTable creates an empty dispatch table. Register all bindings
// before serving requests.
func NewTable() *Table {
	return &Table{pairs: make(map[pairKey]driven.Capability)}
}

// RegisterPair binds an explicit (source, target) pair to a capability.
func (t *Table) RegisterPair(source, target string, c driven.Capability) {
	key := pairKey{domain.NormalizeFormat(source), domain.NormalizeFormat(target)}
	t.pairs[key] = c
}

// RegisterImage binds the image-family wildcard: any request whose
// source format is a recognised image extension routes here regardless
// of the literal pair, with the target format passed through.
func (t *Table) RegisterImage(c driven.Capability) {
	t.image = c
}

// Lookup resolves a format pair to a binding. Unrecognised pairs yield
// an error naming both formats; there is never a fallback guess.
func (t *Table) Lookup(source, target string) (Binding, error) {
	src := domain.NormalizeFormat(source)
	tgt := domain.NormalizeFormat(target)

	if c, ok := t.pairs[pairKey{src, tgt}]; ok {
		return Binding{Capability: c, OutputExt: tgt}, nil
	}
	if t.image != nil && domain.IsImageFormat(src) {
		return Binding{Capability: t.image, OutputExt: tgt}, nil
	}
	return Binding{}, fmt.Errorf("%w: %s to %s", domain.ErrUnsupportedConversion, src, tgt)
}

// Supports reports whether Lookup would succeed for the pair.
func (t *Table) Supports(source, target string) bool {
	_, err := t.Lookup(source, target)
	return err == nil
}
