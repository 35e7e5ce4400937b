package observability

import (
	"context"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestFields(t *testing.T) {
	cases := []struct {
		f    Field
		key  string
		want interface{}
	}{
		{String("page", "1"), "page", "1"},
		{Int("items", 7), "items", 7},
		{Float64("width", 62.4), "width", 62.4},
	}
	for _, c := range cases {
		if c.f.Key() != c.key {
			t.Errorf("key = %q, want %q", c.f.Key(), c.key)
		}
		if c.f.Value() != c.want {
			t.Errorf("value = %v, want %v", c.f.Value(), c.want)
		}
	}
}
