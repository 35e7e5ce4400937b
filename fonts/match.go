package fonts

import (
	"github.com/wudi/pdfedit/model"
)

// maxNudgeFraction bounds the automatic character-spacing adjustment to a
// small fraction of the font size. Larger corrections read as a different
// typeface rather than a tuned one.
const maxNudgeFraction = 0.08

// Matcher selects the drawing variant for a replacement and computes the
// finally-applied spacing. Selection never fails hard; it terminates in a
// standard variant of the original family's general class.
type Matcher struct {
	lib *Library
}

func NewMatcher(lib *Library) *Matcher {
	if lib == nil {
		lib = NewLibrary()
	}
	return &Matcher{lib: lib}
}

// Library exposes the underlying registry.
func (m *Matcher) Library() *Library { return m.lib }

// ScoreItem computes the composite visual boldness of the original item.
// The stroke signal comes from the glyph metrics of the best-matching
// registered variant for the item's reported family and flags.
func (m *Matcher) ScoreItem(item *model.TextItem) float64 {
	resolved := m.lib.Resolve(item.FontFamily, item.Flags.Bold, item.Flags.Italic)
	return BoldnessScore(item.Flags.Bold, item.FontFamily, resolved.StemWidthRatio)
}

// Match resolves the variant used to draw the replacement. Font size is
// never changed by an edit; only the variant and spacing may differ from
// the original.
func (m *Matcher) Match(item *model.TextItem, targetBold bool) (model.FontChoice, *Font) {
	f := m.lib.Resolve(item.FontFamily, targetBold, item.Flags.Italic)

	choice := model.FontChoice{
		Name:        f.Name,
		Family:      f.Family,
		Bold:        f.Bold,
		Italic:      f.Italic,
		CharSpacing: item.CharSpacing,
		WordSpacing: item.WordSpacing,
	}
	if item.Flags.VisualBoldness > HeavyThreshold {
		choice.RenderMode = 2
	}
	return choice, f
}

// AdjustSpacing applies the bounded character-pitch nudge for strategies
// where column or marker alignment benefits from consistent pitch. Other
// strategies keep the original spacing untouched: position drift matters
// there, spacing drift does not.
func (m *Matcher) AdjustSpacing(choice *model.FontChoice, f *Font, item *model.TextItem, newText string, kind model.AlignmentKind) {
	if kind != model.ListItem && kind != model.Tabular {
		return
	}
	origRunes := len([]rune(item.Text))
	newRunes := len([]rune(newText))
	if origRunes == 0 || newRunes == 0 {
		return
	}

	origPitch := f.Measure(item.Text, item.FontSize, 0, 0) / float64(origRunes)
	newPitch := f.Measure(newText, item.FontSize, 0, 0) / float64(newRunes)

	nudge := origPitch - newPitch
	limit := maxNudgeFraction * item.FontSize
	if nudge > limit {
		nudge = limit
	} else if nudge < -limit {
		nudge = -limit
	}
	choice.CharSpacing += nudge
}
