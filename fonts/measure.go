package fonts

import (
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Measure returns the rendered width of text at the given size with the
// given spacing adjustments. Measurement is deterministic: embedded fonts
// are shaped, metric-only fonts fall back to per-rune advances, and fonts
// without any metrics use the average-advance estimate.
func (f *Font) Measure(text string, size, charSpacing, wordSpacing float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	runes := []rune(text)

	var width float64
	switch {
	case f.face != nil:
		width = f.shapedWidth(runes) * size / 1000.0
	case len(f.advances) > 0:
		var total float64
		for _, r := range runes {
			adv, ok := f.advances[r]
			if !ok {
				adv = f.avgAdvance
			}
			total += adv
		}
		width = total * size / 1000.0
	default:
		width = f.avgAdvance * float64(len(runes)) * size / 1000.0
	}

	if len(runes) > 1 {
		width += charSpacing * float64(len(runes)-1)
	}
	if spaces := strings.Count(text, " "); spaces > 0 {
		width += wordSpacing * float64(spaces)
	}
	return width
}

// shaping mutates shared face state, so shaped measurement is serialized.
var shapeMu sync.Mutex

// shapedWidth sums shaped glyph advances in per-mille of the em square.
func (f *Font) shapedWidth(runes []rune) float64 {
	shapeMu.Lock()
	defer shapeMu.Unlock()

	script := detectScript(runes)
	shaper := &shaping.HarfbuzzShaper{}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      f.face,
		Size:      fixed.Int26_6(1000 * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}
	output := shaper.Shape(input)

	var total float64
	for _, g := range output.Glyphs {
		total += float64(g.XAdvance) / 64.0
	}
	return total
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew, language.Syriac, language.Thaana, language.Nko:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	maxCount := 0
	best := language.Latin

	for _, r := range runes {
		script := scriptFromRune(r)
		if script == language.Unknown {
			continue
		}
		counts[script]++
		if counts[script] > maxCount {
			maxCount = counts[script]
			best = script
		}
	}
	return best
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Devanagari, r):
		return language.Devanagari
	case unicode.Is(unicode.Han, r):
		return language.Han
	case unicode.Is(unicode.Hiragana, r):
		return language.Hiragana
	case unicode.Is(unicode.Katakana, r):
		return language.Katakana
	case unicode.Is(unicode.Hangul, r):
		return language.Hangul
	}
	return language.Unknown
}
