// Package content models the subset of PDF content-stream operations the
// editing pipeline reads and writes: text state, text positioning, text
// showing, and color operators.
package content

// Operation represents a PDF operator and its operands.
type Operation struct {
	Operator string
	Operands []Operand
}

// Operand is a type-safe operand value.
type Operand interface {
	operand()
	Type() string
}

type NumberOperand struct{ Value float64 }

func (NumberOperand) operand()     {}
func (NumberOperand) Type() string { return "number" }

type NameOperand struct{ Value string }

func (NameOperand) operand()     {}
func (NameOperand) Type() string { return "name" }

type StringOperand struct{ Value []byte }

func (StringOperand) operand()     {}
func (StringOperand) Type() string { return "string" }

type ArrayOperand struct{ Values []Operand }

func (ArrayOperand) operand()     {}
func (ArrayOperand) Type() string { return "array" }

// TextRenderMode selects how glyphs are painted.
type TextRenderMode int

const (
	TextFill TextRenderMode = iota
	TextStroke
	TextFillStroke
)

// Number builds a NumberOperand.
func Number(v float64) Operand { return NumberOperand{Value: v} }

// Name builds a NameOperand.
func Name(v string) Operand { return NameOperand{Value: v} }

// Str builds a StringOperand from text bytes.
func Str(v []byte) Operand { return StringOperand{Value: v} }

// Op builds an Operation from an operator and operands.
func Op(operator string, operands ...Operand) Operation {
	return Operation{Operator: operator, Operands: operands}
}
