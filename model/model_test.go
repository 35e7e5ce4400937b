package model

import "testing"

func TestRectHelpers(t *testing.T) {
	r := Rect{X0: 100, Y0: 50, X1: 180, Y1: 62}
	if got := r.Width(); got != 80 {
		t.Errorf("Width = %g, want 80", got)
	}
	if got := r.MidX(); got != 140 {
		t.Errorf("MidX = %g, want 140", got)
	}
	if !r.Valid() {
		t.Error("expected rect to be valid")
	}
	if (Rect{X0: 10, X1: 10, Y0: 0, Y1: 1}).Valid() {
		t.Error("zero-width rect must be invalid")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 10, Y1: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", Rect{X0: 5, Y0: 5, X1: 15, Y1: 15}, true},
		{"touching edge", Rect{X0: 10, Y0: 0, X1: 20, Y1: 10}, true},
		{"disjoint right", Rect{X0: 11, Y0: 0, X1: 20, Y1: 10}, false},
		{"disjoint above", Rect{X0: 0, Y0: 11, X1: 10, Y1: 20}, false},
		{"contained", Rect{X0: 2, Y0: 2, X1: 8, Y1: 8}, true},
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: Intersects = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestColorFromInt(t *testing.T) {
	c := ColorFromInt(0x0000FF)
	if c.R != 0 || c.G != 0 || c.B != 1 {
		t.Errorf("blue decoded as %+v", c)
	}
	c = ColorFromInt(0x00FF00)
	if c.G != 1 || c.R != 0 || c.B != 0 {
		t.Errorf("green decoded as %+v", c)
	}
	if !c.Valid() {
		t.Error("decoded color must be valid")
	}
}

func TestItemKey(t *testing.T) {
	if got := ItemKey(1, 0); got != "page_1_text_0" {
		t.Errorf("ItemKey = %q", got)
	}
	if got := ItemKey(12, 34); got != "page_12_text_34" {
		t.Errorf("ItemKey = %q", got)
	}
}

func TestTextItemValidate(t *testing.T) {
	valid := TextItem{
		Page:        1,
		Text:        "SATNA (STA)",
		BBox:        Rect{X0: 100, Y0: 50, X1: 180, Y1: 62},
		Baseline:    52.4,
		FontFamily:  "Helvetica",
		FontSize:    12,
		Color:       Color{B: 1},
		MetadataKey: "page_1_text_0",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := valid
	bad.FontSize = 0
	if err := bad.Validate(); err == nil {
		t.Error("zero font size must fail validation")
	}

	bad = valid
	bad.BBox = Rect{X0: 180, X1: 100, Y0: 50, Y1: 62}
	if err := bad.Validate(); err == nil {
		t.Error("inverted bbox must fail validation")
	}

	bad = valid
	bad.Color = Color{R: 2}
	if err := bad.Validate(); err == nil {
		t.Error("out-of-range color must fail validation")
	}
}

func TestKindStringRoundTrip(t *testing.T) {
	kinds := []AlignmentKind{Generic, CenterPreserve, LeftExpand, ListItem, Tabular, RightPreserve}
	for _, k := range kinds {
		got, ok := KindFromString(k.String())
		if !ok || got != k {
			t.Errorf("round trip failed for %v: got %v ok=%v", k, got, ok)
		}
	}
	if _, ok := KindFromString("justify"); ok {
		t.Error("unknown name must not map to a kind")
	}
}
