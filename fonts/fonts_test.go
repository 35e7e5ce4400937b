package fonts

import (
	"math"
	"testing"

	"github.com/wudi/pdfedit/model"
)

func TestBoldnessScoreMonotonic(t *testing.T) {
	// Each signal, increased in isolation, must never decrease the score.
	base := BoldnessScore(false, "Helvetica", 0.08)

	withFlag := BoldnessScore(true, "Helvetica", 0.08)
	if withFlag < base {
		t.Errorf("bold flag decreased score: %g -> %g", base, withFlag)
	}

	withName := BoldnessScore(false, "Helvetica-Bold", 0.08)
	if withName < base {
		t.Errorf("weight token decreased score: %g -> %g", base, withName)
	}

	prev := -1.0
	for _, ratio := range []float64{0, 0.05, 0.1, 0.15, 0.18, 0.25} {
		s := BoldnessScore(false, "Helvetica", ratio)
		if s < prev {
			t.Errorf("stroke ratio %g decreased score: %g -> %g", ratio, prev, s)
		}
		prev = s
	}
}

func TestBoldnessScoreRange(t *testing.T) {
	lo := BoldnessScore(false, "Helvetica", 0)
	hi := BoldnessScore(true, "Times-Bold", 1.0)
	if lo != 0 {
		t.Errorf("all-regular score = %g, want 0", lo)
	}
	if hi != 100 {
		t.Errorf("all-bold score = %g, want 100", hi)
	}
}

func TestBoldnessThreshold(t *testing.T) {
	// Flag alone (40) reads as regular; flag plus a heavy stroke crosses 50.
	if IsBold(BoldnessScore(true, "Mystery", 0)) {
		t.Error("flag alone must not read as bold")
	}
	if !IsBold(BoldnessScore(true, "Mystery", 0.18)) {
		t.Error("flag plus saturated stroke must read as bold")
	}
	if !IsBold(BoldnessScore(false, "hebo", 0.17)) {
		t.Error("PyMuPDF-style short code plus heavy stroke must read as bold")
	}
}

func TestHasWeightToken(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"Helvetica-Bold", true},
		{"hebo", true},
		{"tibo", true},
		{"cobo", true},
		{"Arial-Black", true},
		{"SomeHeavyFace", true},
		{"Helvetica", false},
		{"Times-Roman", false},
	}
	for _, tc := range cases {
		if got := HasWeightToken(tc.name); got != tc.want {
			t.Errorf("HasWeightToken(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveExactVariant(t *testing.T) {
	lib := NewLibrary()
	f := lib.Resolve("Helvetica", true, false)
	if f.Name != "Helvetica-Bold" {
		t.Errorf("Resolve bold helvetica = %q", f.Name)
	}
	f = lib.Resolve("Helvetica-Bold", false, false)
	if f.Name != "Helvetica" {
		t.Errorf("Resolve regular from bold-suffixed family = %q", f.Name)
	}
}

func TestResolveBaseFamilyFallback(t *testing.T) {
	lib := NewLibrary()
	reg := builtin("Rubik-Regular", "rubik", ClassSans, false, false, regularStemRatio)
	lib.Register(reg)

	// Bold Rubik is not registered: nearest same-family variant wins over
	// the generic fallback.
	f := lib.Resolve("Rubik-Bold", true, false)
	if f != reg {
		t.Errorf("expected base-family fallback to Rubik-Regular, got %q", f.Name)
	}
}

func TestResolveGenericFallback(t *testing.T) {
	lib := NewLibrary()
	cases := []struct {
		family string
		bold   bool
		want   string
	}{
		{"TimesNewRomanPSMT", false, "Times-Roman"},
		{"Georgia", true, "Times-Bold"},
		{"Consolas", false, "Courier"},
		{"Menlo-Bold", true, "Courier-Bold"},
		{"TotallyUnknownFace", false, "Helvetica"},
		{"TotallyUnknownFace", true, "Helvetica-Bold"},
	}
	for _, tc := range cases {
		f := lib.Resolve(tc.family, tc.bold, false)
		if f.Name != tc.want {
			t.Errorf("Resolve(%q, bold=%v) = %q, want %q", tc.family, tc.bold, f.Name, tc.want)
		}
	}
}

func TestResolveNeverNil(t *testing.T) {
	lib := NewLibrary()
	for _, family := range []string{"", "ABCDEF+Subset-Font", "漢字フォント"} {
		for _, bold := range []bool{false, true} {
			if f := lib.Resolve(family, bold, false); f == nil {
				t.Fatalf("Resolve(%q, %v) returned nil", family, bold)
			}
		}
	}
}

func TestBaseFamilyNormalization(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Helvetica-Bold", "helvetica"},
		{"ABCDEF+Helvetica", "helvetica"},
		{"Arial,BoldItalic", "arial"},
		{"TimesBold", "times"},
		{"Rubik-Regular", "rubik"},
	}
	for _, tc := range cases {
		if got := baseFamily(tc.in); got != tc.want {
			t.Errorf("baseFamily(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMeasureHeuristic(t *testing.T) {
	lib := NewLibrary()
	helv, _ := lib.ByName("Helvetica")

	got := helv.Measure("SATNA (STA)", 12, 0, 0)
	want := 0.6 * 12 * 11 // avg advance 600/1000 per rune
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Measure = %g, want %g", got, want)
	}

	if helv.Measure("", 12, 0, 0) != 0 {
		t.Error("empty text must measure 0")
	}
}

func TestMeasureSpacing(t *testing.T) {
	lib := NewLibrary()
	helv, _ := lib.ByName("Helvetica")

	plain := helv.Measure("a b", 10, 0, 0)
	withChar := helv.Measure("a b", 10, 1, 0)
	if math.Abs(withChar-plain-2) > 1e-9 {
		t.Errorf("char spacing: got delta %g, want 2", withChar-plain)
	}
	withWord := helv.Measure("a b", 10, 0, 3)
	if math.Abs(withWord-plain-3) > 1e-9 {
		t.Errorf("word spacing: got delta %g, want 3", withWord-plain)
	}
}

func TestMeasureDeterministic(t *testing.T) {
	lib := NewLibrary()
	helv, _ := lib.ByName("Helvetica")
	a := helv.Measure("RANI KAMLAPATI (RKMP)", 12, 0, 0)
	b := helv.Measure("RANI KAMLAPATI (RKMP)", 12, 0, 0)
	if a != b {
		t.Errorf("measurement not deterministic: %g vs %g", a, b)
	}
}

func TestMatchPreservesSizeAndSpacing(t *testing.T) {
	m := NewMatcher(nil)
	item := &model.TextItem{
		Text:        "Total",
		FontFamily:  "Helvetica",
		FontSize:    12,
		CharSpacing: 0.5,
		WordSpacing: 1.5,
	}
	choice, f := m.Match(item, false)
	if f == nil {
		t.Fatal("Match returned nil font")
	}
	if choice.CharSpacing != 0.5 || choice.WordSpacing != 1.5 {
		t.Errorf("original spacing not carried: %+v", choice)
	}
	if choice.RenderMode != 0 {
		t.Errorf("render mode = %d, want fill", choice.RenderMode)
	}
}

func TestMatchHeavyTextStrokes(t *testing.T) {
	m := NewMatcher(nil)
	item := &model.TextItem{
		Text:       "HEADING",
		FontFamily: "Helvetica-Bold",
		FontSize:   18,
		Flags:      model.FontFlags{Bold: true, VisualBoldness: 90},
	}
	choice, _ := m.Match(item, true)
	if choice.RenderMode != 2 {
		t.Errorf("render mode = %d, want fill+stroke for very heavy text", choice.RenderMode)
	}
	if !choice.Bold {
		t.Error("expected a bold variant")
	}
}

func TestMatchIdempotent(t *testing.T) {
	m := NewMatcher(nil)
	item := &model.TextItem{
		Text:       "SATNA (STA)",
		FontFamily: "Helvetica",
		FontSize:   12,
	}
	first, _ := m.Match(item, false)
	second, _ := m.Match(item, false)
	if first != second {
		t.Errorf("Match not idempotent: %+v vs %+v", first, second)
	}
}

func TestAdjustSpacingOnlyForPitchStrategies(t *testing.T) {
	m := NewMatcher(nil)
	item := &model.TextItem{Text: "1. Intro", FontFamily: "Helvetica", FontSize: 12}
	_, f := m.Match(item, false)

	for _, kind := range []model.AlignmentKind{model.CenterPreserve, model.LeftExpand, model.RightPreserve, model.Generic} {
		choice := model.FontChoice{}
		m.AdjustSpacing(&choice, f, item, "1. A much longer introduction", kind)
		if choice.CharSpacing != 0 {
			t.Errorf("%v: spacing adjusted to %g, want 0", kind, choice.CharSpacing)
		}
	}
}

func TestAdjustSpacingClamped(t *testing.T) {
	lib := NewLibrary()
	// A fake variant with wildly uneven advances forces a large pitch delta.
	narrow := builtin("Narrow", "narrow", ClassSans, false, false, regularStemRatio)
	narrow.advances = map[rune]float64{'i': 100, 'W': 1000}
	lib.Register(narrow)
	m := NewMatcher(lib)

	item := &model.TextItem{Text: "WWWW", FontFamily: "Narrow", FontSize: 10}
	_, f := m.Match(item, false)

	choice := model.FontChoice{}
	m.AdjustSpacing(&choice, f, item, "iiii", model.Tabular)
	limit := maxNudgeFraction * item.FontSize
	if choice.CharSpacing > limit+1e-9 || choice.CharSpacing < -limit-1e-9 {
		t.Errorf("nudge %g exceeds clamp %g", choice.CharSpacing, limit)
	}
	if choice.CharSpacing != limit {
		t.Errorf("nudge = %g, want clamped to %g", choice.CharSpacing, limit)
	}
}

func TestAdjustSpacingNoOpForSameText(t *testing.T) {
	m := NewMatcher(nil)
	item := &model.TextItem{Text: "2) Cell", FontFamily: "Helvetica", FontSize: 12}
	choice, f := m.Match(item, false)
	before := choice.CharSpacing
	m.AdjustSpacing(&choice, f, item, "2) Cell", model.ListItem)
	if choice.CharSpacing != before {
		t.Errorf("same-text nudge = %g, want unchanged", choice.CharSpacing-before)
	}
}
