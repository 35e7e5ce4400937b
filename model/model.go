// Package model defines the shared value types of the text replacement
// pipeline: extracted text runs, alignment strategies, resolved font
// choices, and fully computed replacement plans.
package model

import (
	"fmt"
)

// Rect is an axis-aligned rectangle in page coordinate space with the
// y axis increasing upward, as in PDF user space.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// MidX returns the horizontal midpoint of the rectangle.
func (r Rect) MidX() float64 { return (r.X0 + r.X1) / 2 }

// Valid reports whether the rectangle has positive extent on both axes.
func (r Rect) Valid() bool { return r.X1 > r.X0 && r.Y1 > r.Y0 }

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return !(o.X0 > r.X1 || o.X1 < r.X0 || o.Y0 > r.Y1 || o.Y1 < r.Y0)
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Y0 >= r.Y0 && o.Y1 <= r.Y1
}

// Color is an RGB triple with each channel normalized to [0,1].
type Color struct {
	R, G, B float64
}

// ColorFromInt decodes a packed 0xRRGGBB integer into a normalized triple.
func ColorFromInt(v int) Color {
	return Color{
		R: float64((v>>16)&0xFF) / 255.0,
		G: float64((v>>8)&0xFF) / 255.0,
		B: float64(v&0xFF) / 255.0,
	}
}

// Valid reports whether every channel is within [0,1].
func (c Color) Valid() bool {
	for _, ch := range [3]float64{c.R, c.G, c.B} {
		if ch < 0 || ch > 1 {
			return false
		}
	}
	return true
}

// FontFlags is the structured font descriptor of a text run. Bold and
// Italic mirror the bits reported by the document; VisualBoldness is the
// composite 0-100 weight estimate computed independently of those bits,
// because the document's own flags are frequently wrong or absent.
type FontFlags struct {
	Bold      bool
	Italic    bool
	Serif     bool
	Monospace bool

	VisualBoldness float64
}

// TextItem is one extracted run of rendered text. It is created once at
// extraction time and read-only thereafter; a replacement produces a new
// item rather than mutating the original.
type TextItem struct {
	Page        int // 1-based
	Text        string
	BBox        Rect
	Baseline    float64
	FontFamily  string
	FontSize    float64
	Flags       FontFlags
	Color       Color
	CharSpacing float64
	WordSpacing float64
	MetadataKey string
}

// ItemKey builds the stable metadata key for the n-th run (0-based) of a
// 1-based page, in the extraction-order format callers reference items by.
func ItemKey(page, ordinal int) string {
	return fmt.Sprintf("page_%d_text_%d", page, ordinal)
}

// Validate checks the item invariants: positive bbox extent, positive
// font size, and color channels within range.
func (it *TextItem) Validate() error {
	if !it.BBox.Valid() {
		return fmt.Errorf("text item %q: degenerate bbox %+v", it.MetadataKey, it.BBox)
	}
	if it.FontSize <= 0 {
		return fmt.Errorf("text item %q: font size %g must be positive", it.MetadataKey, it.FontSize)
	}
	if !it.Color.Valid() {
		return fmt.Errorf("text item %q: color channels out of range %+v", it.MetadataKey, it.Color)
	}
	if it.Page < 1 {
		return fmt.Errorf("text item %q: page %d must be 1-based", it.MetadataKey, it.Page)
	}
	return nil
}

// AlignmentKind enumerates the closed set of alignment strategies. Keeping
// the set closed lets the layout engine switch exhaustively instead of
// falling through a default branch.
type AlignmentKind int

const (
	// Generic is the defensive zero value; the layout engine treats it
	// as LeftExpand. The classifier never produces it.
	Generic AlignmentKind = iota

	// CenterPreserve keeps the run's own horizontal center fixed.
	CenterPreserve

	// LeftExpand keeps the left edge fixed and grows rightward.
	LeftExpand

	// ListItem keeps the marker's left edge fixed.
	ListItem

	// Tabular keeps the detected column's left edge fixed.
	Tabular

	// RightPreserve keeps the right edge fixed and grows leftward.
	RightPreserve
)

func (k AlignmentKind) String() string {
	switch k {
	case CenterPreserve:
		return "center_preserve"
	case LeftExpand:
		return "left_expand"
	case ListItem:
		return "list_item"
	case Tabular:
		return "tabular"
	case RightPreserve:
		return "right_preserve"
	default:
		return "generic"
	}
}

// KindFromString maps a strategy name back to its kind. It returns false
// for names outside the closed set.
func KindFromString(s string) (AlignmentKind, bool) {
	switch s {
	case "center_preserve":
		return CenterPreserve, true
	case "left_expand":
		return LeftExpand, true
	case "list_item":
		return ListItem, true
	case "tabular":
		return Tabular, true
	case "right_preserve":
		return RightPreserve, true
	case "generic":
		return Generic, true
	}
	return Generic, false
}

// AlignmentStrategy is a strategy tag plus the anchor coordinate that must
// stay fixed across the edit: center-x for CenterPreserve, left-x for
// LeftExpand/ListItem/Tabular, right-x for RightPreserve.
type AlignmentStrategy struct {
	Kind   AlignmentKind
	Anchor float64
}

// FontChoice is the resolved font variant actually used for drawing,
// together with the finally-applied spacing and render mode.
type FontChoice struct {
	Name   string // resolved variant name, e.g. "Helvetica-Bold"
	Family string // base family the variant belongs to
	Bold   bool
	Italic bool

	// RenderMode selects fill (0) or fill+stroke (2). Stroking is used to
	// thicken text whose visual boldness exceeds what the variant alone
	// reproduces.
	RenderMode int

	CharSpacing float64
	WordSpacing float64
}

// ReplacementPlan is the fully resolved set of geometry, font, color and
// spacing parameters for one edit. It is built per request and handed to
// the drawing primitive; it is never persisted.
type ReplacementPlan struct {
	Source   *TextItem
	NewText  string
	Strategy AlignmentStrategy
	Font     FontChoice
	NewBBox  Rect
	Baseline float64
	Color    Color

	// Overflow is set when the recomputed extent hit the page's right
	// margin and was clamped. The plan is still applicable.
	Overflow bool
}
