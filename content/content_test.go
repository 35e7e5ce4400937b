package content

import (
	"bytes"
	"testing"
)

func TestSerializeOperations(t *testing.T) {
	ops := []Operation{
		Op("BT"),
		Op("Tf", Name("Helvetica"), Number(12)),
		Op("Tm", Number(1), Number(0), Number(0), Number(1), Number(100), Number(52.4)),
		Op("Tj", Str([]byte("SATNA (STA)"))),
		Op("ET"),
	}
	got := Serialize(ops)
	want := "BT\n/Helvetica 12 Tf\n1 0 0 1 100 52.4 Tm\n(SATNA \\(STA\\)) Tj\nET\n"
	if string(got) != want {
		t.Errorf("Serialize:\ngot  %q\nwant %q", got, want)
	}
}

func TestSerializeDeterministic(t *testing.T) {
	ops := []Operation{
		Op("rg", Number(0), Number(0), Number(1)),
		Op("Tj", Str([]byte("blue\ttext"))),
	}
	a := Serialize(ops)
	b := Serialize(ops)
	if !bytes.Equal(a, b) {
		t.Error("serialization must be deterministic")
	}
	if !bytes.Contains(a, []byte("\\t")) {
		t.Errorf("tab not escaped: %q", a)
	}
}

func TestSerializeEmpty(t *testing.T) {
	if got := Serialize(nil); got != nil {
		t.Errorf("Serialize(nil) = %q, want nil", got)
	}
}

func TestSerializeArrayOperand(t *testing.T) {
	ops := []Operation{
		Op("TJ", ArrayOperand{Values: []Operand{Str([]byte("a")), Number(-20), Str([]byte("b"))}}),
	}
	got := string(Serialize(ops))
	want := "[(a) -20 (b)] TJ\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSerializeNonASCIIEscaped(t *testing.T) {
	got := string(Serialize([]Operation{Op("Tj", Str([]byte{0xFF, 'A'}))}))
	want := "(\\377A) Tj\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
