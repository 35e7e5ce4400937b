// Package document provides the in-memory page model the replacement
// pipeline mutates: extraction of text runs, region erasure, text drawing,
// and deterministic serialization. Concurrent edits to one document are
// serialized through the document's lock; distinct documents are
// independent.
package document

import (
	"fmt"
	"sync"

	"github.com/wudi/pdfedit/content"
	"github.com/wudi/pdfedit/fonts"
	"github.com/wudi/pdfedit/model"
)

// Page holds one page's geometry, font resources, and content operations.
type Page struct {
	MediaBox model.Rect
	Fonts    map[string]*fonts.Font
	Ops      []content.Operation
}

// Document is a mutable in-memory document.
type Document struct {
	mu    sync.Mutex
	lib   *fonts.Library
	pages []*Page
}

// New creates an empty document backed by the given font library. A nil
// library gets the standard built-in variants.
func New(lib *fonts.Library) *Document {
	if lib == nil {
		lib = fonts.NewLibrary()
	}
	return &Document{lib: lib}
}

// Library returns the document's font library.
func (d *Document) Library() *fonts.Library { return d.lib }

// AddPage appends a page of the given size and returns it.
func (d *Document) AddPage(width, height float64) *Page {
	p := &Page{
		MediaBox: model.Rect{X1: width, Y1: height},
		Fonts:    make(map[string]*fonts.Font),
	}
	d.pages = append(d.pages, p)
	return p
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return len(d.pages) }

// Page returns the 1-based page.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, &PageOutOfRangeError{Page: n, Count: len(d.pages)}
	}
	return d.pages[n-1], nil
}

// Lock acquires exclusive access to the document's mutable state. Callers
// mutating page content must hold the lock and release it on every exit
// path.
func (d *Document) Lock() { d.mu.Lock() }

// Unlock releases exclusive access.
func (d *Document) Unlock() { d.mu.Unlock() }

// PageOutOfRangeError reports a page index outside the document.
type PageOutOfRangeError struct {
	Page  int
	Count int
}

func (e *PageOutOfRangeError) Error() string {
	return fmt.Sprintf("page %d out of range (document has %d pages)", e.Page, e.Count)
}
