// Package editor orchestrates a text replacement end to end: locate the
// item by its metadata key, classify its alignment, resolve the drawing
// font, recompute geometry, then erase and redraw atomically.
package editor

import (
	"context"
	"fmt"

	"github.com/wudi/pdfedit/document"
	"github.com/wudi/pdfedit/model"
)

// Editor is the high-level replacement API.
type Editor interface {
	// ListTextItems extracts all text items of a page in rendering order,
	// each carrying the metadata key later edits reference it by.
	ListTextItems(ctx context.Context, doc *document.Document, pageNum int) ([]model.TextItem, error)

	// BuildPlan resolves everything a replacement needs without mutating
	// the document: alignment strategy, font variant, spacing, new
	// geometry, and the overflow flag.
	BuildPlan(ctx context.Context, doc *document.Document, key, newText string) (*model.ReplacementPlan, error)

	// Apply executes a plan against the document. Application is
	// all-or-nothing: on failure the page content is exactly what it was
	// before the call.
	Apply(ctx context.Context, doc *document.Document, plan *model.ReplacementPlan) error

	// ReplaceText builds and applies a plan in one step, returning the
	// plan that was applied.
	ReplaceText(ctx context.Context, doc *document.Document, key, newText string) (*model.ReplacementPlan, error)

	// RenderOutput serializes the document deterministically.
	RenderOutput(doc *document.Document) ([]byte, error)
}

// UnknownMetadataKeyError reports a replacement request that references
// no extracted text item.
type UnknownMetadataKeyError struct {
	Key string
}

func (e *UnknownMetadataKeyError) Error() string {
	return fmt.Sprintf("no text item with metadata key %q", e.Key)
}

// FontResolutionError reports that no drawing variant could be resolved
// for a family. With the standard built-in variants registered this does
// not occur; an empty custom library can produce it.
type FontResolutionError struct {
	Family string
}

func (e *FontResolutionError) Error() string {
	return fmt.Sprintf("no font variant resolvable for family %q", e.Family)
}

// MutationError wraps a failure while mutating page content. When it is
// returned the document has been restored to its pre-call state.
type MutationError struct {
	Key string
	Err error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("applying replacement for %q: %v", e.Key, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }
