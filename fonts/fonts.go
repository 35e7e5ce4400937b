// Package fonts implements the font matching side of text replacement:
// variant resolution among registered fonts, visual boldness scoring,
// width measurement, and spacing adjustment.
package fonts

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync"

	gofont "github.com/go-text/typesetting/font"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Class is the broad typographic class of a family, used for the generic
// fallback when neither the exact variant nor the base family is embedded.
type Class int

const (
	ClassSans Class = iota
	ClassSerif
	ClassMono
)

func (c Class) String() string {
	switch c {
	case ClassSerif:
		return "serif"
	case ClassMono:
		return "mono"
	default:
		return "sans"
	}
}

// Font is a drawable font variant: either a parsed embedded TrueType font
// with real metrics, or a metric-only builtin.
type Font struct {
	Name   string
	Family string
	Class  Class
	Bold   bool
	Italic bool

	// StemWidthRatio estimates dominant stroke width relative to the em
	// square. It feeds the glyph-metrics signal of the boldness score.
	StemWidthRatio float64

	ascent     float64 // per-mille of em, positive
	descent    float64 // per-mille of em, positive
	avgAdvance float64 // per-mille fallback advance per glyph
	advances   map[rune]float64

	data []byte
	face *gofont.Face
}

// Ascent returns the ascent in per-mille of the em square.
func (f *Font) Ascent() float64 { return f.ascent }

// Descent returns the positive descent in per-mille of the em square.
func (f *Font) Descent() float64 { return f.descent }

// Embedded reports whether the variant carries a real font program.
func (f *Font) Embedded() bool { return len(f.data) > 0 }

const (
	defaultAscent  = 800
	defaultDescent = 200
	// Average advance used when no metrics are available; 0.6 em is a
	// reasonable mean for common Latin text faces.
	defaultAvgAdvance = 600

	regularStemRatio = 0.08
	boldStemRatio    = 0.17
)

// LoadTrueType parses a TrueType/OpenType font and builds a Font with real
// metrics and Latin-1 advances. The raw program is retained for shaping.
func LoadTrueType(name string, data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("truetype font data is empty")
	}
	parsed, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	unitsPerEm := parsed.UnitsPerEm()
	if unitsPerEm == 0 {
		return nil, fmt.Errorf("invalid unitsPerEm")
	}
	buf := &sfnt.Buffer{}
	ppem := fixed.Int26_6(int32(unitsPerEm) << 6)

	baseName := strings.TrimSpace(name)
	if ps, _ := parsed.Name(buf, sfnt.NameIDPostScript); len(ps) > 0 {
		baseName = ps
	}
	if baseName == "" {
		baseName = "CustomTT"
	}

	metrics, _ := parsed.Metrics(buf, ppem, xfont.HintingNone)
	ascent := scaleFixed(metrics.Ascent, unitsPerEm)
	descent := math.Abs(scaleFixed(metrics.Descent, unitsPerEm))
	if ascent <= 0 {
		ascent = defaultAscent
	}
	if descent <= 0 {
		descent = defaultDescent
	}

	advances := make(map[rune]float64)
	var total float64
	for r := rune(32); r < 256; r++ {
		idx, err := parsed.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			continue
		}
		adv, err := parsed.GlyphAdvance(buf, idx, ppem, xfont.HintingNone)
		if err != nil {
			continue
		}
		w := scaleFixed(adv, unitsPerEm)
		advances[r] = w
		total += w
	}
	avg := float64(defaultAvgAdvance)
	if len(advances) > 0 {
		avg = total / float64(len(advances))
	}

	bold := HasWeightToken(baseName)
	stem := regularStemRatio
	if bold {
		stem = boldStemRatio
	}

	f := &Font{
		Name:           baseName,
		Family:         baseFamily(baseName),
		Class:          classifyFamily(baseName),
		Bold:           bold,
		Italic:         strings.Contains(strings.ToLower(baseName), "italic") || strings.Contains(strings.ToLower(baseName), "oblique"),
		StemWidthRatio: stem,
		ascent:         ascent,
		descent:        descent,
		avgAdvance:     avg,
		advances:       advances,
		data:           data,
	}
	if face, err := gofont.ParseTTF(bytes.NewReader(data)); err == nil {
		f.face = face
	}
	return f, nil
}

func scaleFixed(val fixed.Int26_6, unitsPerEm sfnt.Units) float64 {
	return float64(val) * 1000.0 / (64.0 * float64(unitsPerEm))
}

// builtin constructs a metric-only standard variant.
func builtin(name, family string, class Class, bold, italic bool, stem float64) *Font {
	return &Font{
		Name:           name,
		Family:         family,
		Class:          class,
		Bold:           bold,
		Italic:         italic,
		StemWidthRatio: stem,
		ascent:         defaultAscent,
		descent:        defaultDescent,
		avgAdvance:     defaultAvgAdvance,
	}
}

// Library is a registry of drawable font variants. Resolution never fails:
// it terminates in a metric-only standard variant of the right class.
type Library struct {
	mu      sync.RWMutex
	byName  map[string]*Font
	fonts   []*Font
	generic map[Class][2]*Font // regular, bold
}

// NewLibrary builds a library pre-populated with the standard metric-only
// variants used as terminal fallbacks.
func NewLibrary() *Library {
	l := &Library{
		byName:  make(map[string]*Font),
		generic: make(map[Class][2]*Font),
	}
	helv := builtin("Helvetica", "helvetica", ClassSans, false, false, regularStemRatio)
	hebo := builtin("Helvetica-Bold", "helvetica", ClassSans, true, false, boldStemRatio)
	heob := builtin("Helvetica-Oblique", "helvetica", ClassSans, false, true, regularStemRatio)
	times := builtin("Times-Roman", "times", ClassSerif, false, false, regularStemRatio)
	tibo := builtin("Times-Bold", "times", ClassSerif, true, false, boldStemRatio)
	cour := builtin("Courier", "courier", ClassMono, false, false, regularStemRatio)
	cobo := builtin("Courier-Bold", "courier", ClassMono, true, false, boldStemRatio)
	for _, f := range []*Font{helv, hebo, heob, times, tibo, cour, cobo} {
		l.Register(f)
	}
	l.generic[ClassSans] = [2]*Font{helv, hebo}
	l.generic[ClassSerif] = [2]*Font{times, tibo}
	l.generic[ClassMono] = [2]*Font{cour, cobo}
	return l
}

// Register adds a variant, replacing any previous variant of the same name.
func (l *Library) Register(f *Font) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.byName[f.Name]; ok {
		for i, existing := range l.fonts {
			if existing == prev {
				l.fonts[i] = f
			}
		}
		l.byName[f.Name] = f
		return
	}
	l.byName[f.Name] = f
	l.fonts = append(l.fonts, f)
}

// ByName returns the variant registered under the exact name.
func (l *Library) ByName(name string) (*Font, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	f, ok := l.byName[name]
	return f, ok
}

// Resolve selects the best available variant for a family and weight:
// exact family with matching weight, then any variant of the same base
// family, then the standard variant of the family's general class.
func (l *Library) Resolve(family string, bold, italic bool) *Font {
	l.mu.RLock()
	defer l.mu.RUnlock()

	base := baseFamily(family)

	var sameFamily []*Font
	for _, f := range l.fonts {
		if f.Family == base {
			sameFamily = append(sameFamily, f)
		}
	}
	for _, f := range sameFamily {
		if f.Bold == bold && f.Italic == italic {
			return f
		}
	}
	for _, f := range sameFamily {
		if f.Bold == bold {
			return f
		}
	}
	if len(sameFamily) > 0 {
		return sameFamily[0]
	}

	pair := l.generic[classifyFamily(family)]
	if bold {
		return pair[1]
	}
	return pair[0]
}

// baseFamily normalizes a reported font name to its base family: subset
// prefixes, separator-delimited style suffixes, and trailing style words
// are stripped, and the result is lowercased.
func baseFamily(family string) string {
	s := strings.ToLower(strings.TrimSpace(family))
	if i := strings.Index(s, "+"); i >= 0 && i <= 7 {
		s = s[i+1:]
	}
	for _, sep := range []string{"-", ","} {
		if i := strings.Index(s, sep); i >= 0 {
			s = s[:i]
		}
	}
	for _, suffix := range []string{
		"bolditalic", "boldoblique", "bold", "black", "heavy",
		"italic", "oblique", "light", "medium", "regular",
	} {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.TrimSpace(s)
}

func classifyFamily(family string) Class {
	s := strings.ToLower(family)
	for _, tok := range []string{"courier", "mono", "consolas", "menlo", "cour", "cobo"} {
		if strings.Contains(s, tok) {
			return ClassMono
		}
	}
	for _, tok := range []string{"times", "serif", "roman", "georgia", "garamond", "tibo"} {
		if strings.Contains(s, tok) {
			return ClassSerif
		}
	}
	return ClassSans
}
