package fonts

import "strings"

// Visual boldness is scored 0-100 from three weighted signals. The
// document's own bold flag is frequently wrong or absent, and name
// heuristics alone are fooled by non-standard naming; the composite is
// more robust than any single signal.
const (
	flagSignalWeight   = 40
	nameSignalWeight   = 35
	strokeSignalWeight = 25

	// BoldThreshold separates "reads as regular" from "reads as bold".
	BoldThreshold = 50.0

	// HeavyThreshold marks text so heavy the chosen variant alone will
	// not reproduce it; drawing escalates to fill+stroke above this.
	HeavyThreshold = 75.0

	// strokeRatioCeiling is the stem ratio at which the glyph-metrics
	// signal saturates.
	strokeRatioCeiling = 0.18
)

var weightTokens = []string{"hebo", "tibo", "cobo", "bold", "black", "heavy"}

// HasWeightToken reports whether a font name carries a weight token.
func HasWeightToken(name string) bool {
	s := strings.ToLower(name)
	for _, tok := range weightTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

// BoldnessScore combines the document's bold flag, the family-name
// heuristic, and the stroke-width-to-height ratio into a 0-100 score.
// The score is monotonic in each signal independently.
func BoldnessScore(boldFlag bool, fontName string, strokeRatio float64) float64 {
	score := 0.0
	if boldFlag {
		score += flagSignalWeight
	}
	if HasWeightToken(fontName) {
		score += nameSignalWeight
	}
	r := strokeRatio / strokeRatioCeiling
	if r < 0 {
		r = 0
	} else if r > 1 {
		r = 1
	}
	score += strokeSignalWeight * r
	return score
}

// IsBold applies the fixed threshold to a boldness score.
func IsBold(score float64) bool { return score >= BoldThreshold }
