// Package classify infers the semantic alignment intent of an extracted
// text run from geometric and typographic signals. The classifier is a
// pure function of the item and its page context; it holds no state
// beyond configuration.
package classify

import (
	"math"
	"regexp"
	"strings"

	"github.com/wudi/pdfedit/model"
)

// Config holds the classifier's detection thresholds.
type Config struct {
	// CenterToleranceRatio is how close (as a fraction of page width) an
	// item's center must sit to the page's center to count as
	// page-centered. Default: 0.005.
	CenterToleranceRatio float64

	// ColumnTolerance is the maximum difference in left edges (points)
	// for items to be considered members of the same column.
	// Default: 2.0.
	ColumnTolerance float64

	// MinColumnRows is the minimum number of rows sharing a left edge for
	// the group to count as a column. Default: 3.
	MinColumnRows int

	// RightEdgeProximity is how close (points) an item's right edge must
	// sit to the page's right edge to count as right-aligned.
	// Default: 50.
	RightEdgeProximity float64
}

// DefaultConfig returns the default detection thresholds.
func DefaultConfig() Config {
	return Config{
		CenterToleranceRatio: 0.005,
		ColumnTolerance:      2.0,
		MinColumnRows:        3,
		RightEdgeProximity:   50.0,
	}
}

// Classifier assigns an alignment strategy to a text item.
type Classifier struct {
	cfg Config
}

// New creates a classifier with default configuration.
func New() *Classifier { return &Classifier{cfg: DefaultConfig()} }

// NewWithConfig creates a classifier with custom thresholds.
func NewWithConfig(cfg Config) *Classifier {
	def := DefaultConfig()
	if cfg.CenterToleranceRatio <= 0 {
		cfg.CenterToleranceRatio = def.CenterToleranceRatio
	}
	if cfg.ColumnTolerance <= 0 {
		cfg.ColumnTolerance = def.ColumnTolerance
	}
	if cfg.MinColumnRows <= 0 {
		cfg.MinColumnRows = def.MinColumnRows
	}
	if cfg.RightEdgeProximity <= 0 {
		cfg.RightEdgeProximity = def.RightEdgeProximity
	}
	return &Classifier{cfg: cfg}
}

// stationPattern matches standalone uppercase labels with a parenthesized
// uppercase code, e.g. "SATNA (STA)". These labels keep their own literal
// center across an edit: a replacement of very different length must stay
// symmetric around the original midpoint.
var stationPattern = regexp.MustCompile(`^[A-Z][A-Z\s]*\s*\([A-Z0-9]+\)$`)

// List-marker shapes: "1. ", "2) ", bullets, "A. ", "b) ", "(1) ".
var listPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*\d+[\.\)]\s`),
	regexp.MustCompile(`^\s*[•◦▪‣\-\*\+]\s`),
	regexp.MustCompile(`^\s*[A-Za-z][\.\)]\s`),
	regexp.MustCompile(`^\s*\([A-Za-z0-9]\)\s`),
}

// IsStationLabel reports whether text matches the NAME (CODE) shape.
func IsStationLabel(text string) bool {
	return stationPattern.MatchString(strings.TrimSpace(text))
}

// IsListItem reports whether text begins with a list marker.
func IsListItem(text string) bool {
	for _, p := range listPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Classify assigns an alignment strategy. The decision order encodes
// priority when signals conflict: station label, list marker, column
// membership, right-edge proximity, page-centered, then the left-rooted
// default.
func (c *Classifier) Classify(item *model.TextItem, pageWidth float64, neighbors []*model.TextItem) model.AlignmentStrategy {
	if IsStationLabel(item.Text) {
		return model.AlignmentStrategy{Kind: model.CenterPreserve, Anchor: item.BBox.MidX()}
	}
	if IsListItem(item.Text) {
		return model.AlignmentStrategy{Kind: model.ListItem, Anchor: item.BBox.X0}
	}
	if left, ok := c.columnLeft(item, neighbors); ok {
		return model.AlignmentStrategy{Kind: model.Tabular, Anchor: left}
	}
	if pageWidth > 0 && pageWidth-item.BBox.X1 < c.cfg.RightEdgeProximity {
		return model.AlignmentStrategy{Kind: model.RightPreserve, Anchor: item.BBox.X1}
	}
	if pageWidth > 0 {
		center := pageWidth / 2
		if math.Abs(item.BBox.MidX()-center) <= c.cfg.CenterToleranceRatio*pageWidth {
			return model.AlignmentStrategy{Kind: model.CenterPreserve, Anchor: center}
		}
	}
	return model.AlignmentStrategy{Kind: model.LeftExpand, Anchor: item.BBox.X0}
}

// StrategyFor builds the strategy for an externally chosen kind, deriving
// the anchor the same way the classifier would. It lets rule hooks
// override the kind without re-implementing anchor selection.
func StrategyFor(kind model.AlignmentKind, item *model.TextItem, pageWidth float64) model.AlignmentStrategy {
	switch kind {
	case model.CenterPreserve:
		return model.AlignmentStrategy{Kind: kind, Anchor: item.BBox.MidX()}
	case model.RightPreserve:
		return model.AlignmentStrategy{Kind: kind, Anchor: item.BBox.X1}
	case model.ListItem, model.Tabular, model.LeftExpand, model.Generic:
		return model.AlignmentStrategy{Kind: kind, Anchor: item.BBox.X0}
	}
	return model.AlignmentStrategy{Kind: model.LeftExpand, Anchor: item.BBox.X0}
}

// columnLeft looks for neighbors on the same page whose left edges line up
// with the item's across multiple rows. Co-linear runs on the same
// baseline do not count: a column needs vertical repetition.
func (c *Classifier) columnLeft(item *model.TextItem, neighbors []*model.TextItem) (float64, bool) {
	lefts := []float64{item.BBox.X0}
	for _, n := range neighbors {
		if n == nil || n.Page != item.Page || n.MetadataKey == item.MetadataKey {
			continue
		}
		if math.Abs(n.BBox.X0-item.BBox.X0) > c.cfg.ColumnTolerance {
			continue
		}
		if math.Abs(n.Baseline-item.Baseline) < 1.0 {
			continue
		}
		lefts = append(lefts, n.BBox.X0)
	}
	if len(lefts) < c.cfg.MinColumnRows {
		return 0, false
	}
	var sum float64
	for _, l := range lefts {
		sum += l
	}
	return sum / float64(len(lefts)), true
}
