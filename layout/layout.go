// Package layout recomputes text geometry for a replacement: given the
// alignment strategy, the original geometry, and the measured width of the
// new text, it derives the new bounding box and baseline. Edits are
// horizontal-only; vertical extent and baseline always carry over.
package layout

import (
	"github.com/wudi/pdfedit/model"
)

// DefaultMarginGutter is the default distance from the page's right edge
// to the usable right margin.
const DefaultMarginGutter = 36.0

// Result is the recomputed geometry for one replacement.
type Result struct {
	BBox     model.Rect
	Baseline float64

	// Overflow reports that the new extent hit the right margin and the
	// right edge was clamped. Truncation and line breaking are never
	// attempted; the caller decides whether a clamped edit is acceptable.
	Overflow bool
}

// Engine recomputes layout within one page's horizontal bounds.
type Engine struct {
	pageWidth   float64
	rightMargin float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRightMargin overrides the usable right margin (an absolute x
// coordinate on the page).
func WithRightMargin(x float64) Option {
	return func(e *Engine) { e.rightMargin = x }
}

// NewEngine creates an engine for a page of the given width. The right
// margin defaults to the page width minus the standard gutter.
func NewEngine(pageWidth float64, opts ...Option) *Engine {
	e := &Engine{
		pageWidth:   pageWidth,
		rightMargin: pageWidth - DefaultMarginGutter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recompute derives the new bbox and baseline for a replacement of
// measured width under the given strategy. The switch over the strategy
// union is exhaustive; Generic behaves as LeftExpand.
func (e *Engine) Recompute(item *model.TextItem, strategy model.AlignmentStrategy, measuredWidth float64) Result {
	res := Result{
		BBox: model.Rect{
			Y0: item.BBox.Y0,
			Y1: item.BBox.Y1,
		},
		Baseline: item.Baseline,
	}

	switch strategy.Kind {
	case model.CenterPreserve:
		res.BBox.X0 = strategy.Anchor - measuredWidth/2
		res.BBox.X1 = strategy.Anchor + measuredWidth/2
		// A centered run that would fall off the page shifts back on
		// before the margin rule applies.
		if res.BBox.X0 < 0 {
			res.BBox.X0 = 0
			res.BBox.X1 = measuredWidth
		} else if e.pageWidth > 0 && res.BBox.X1 > e.pageWidth {
			res.BBox.X1 = e.pageWidth
			res.BBox.X0 = e.pageWidth - measuredWidth
			if res.BBox.X0 < 0 {
				res.BBox.X0 = 0
			}
		}
	case model.RightPreserve:
		res.BBox.X1 = strategy.Anchor
		res.BBox.X0 = strategy.Anchor - measuredWidth
		if res.BBox.X0 < 0 {
			res.BBox.X0 = 0
			res.BBox.X1 = measuredWidth
		}
	case model.LeftExpand, model.ListItem, model.Tabular, model.Generic:
		res.BBox.X0 = strategy.Anchor
		res.BBox.X1 = strategy.Anchor + measuredWidth
	}

	// The margin clamp never pulls an edge left of where the original
	// already sat: a run legitimately past the margin keeps its edge
	// unless the replacement extends it further. A right-anchored edge
	// therefore stays pinned even inside the margin gutter.
	limit := e.rightMargin
	if item.BBox.X1 > limit {
		limit = item.BBox.X1
	}
	if res.BBox.X1 > limit {
		res.BBox.X1 = limit
		res.Overflow = true
	}
	return res
}
