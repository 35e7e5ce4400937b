package content

import (
	"bytes"
	"fmt"
)

// Serialize renders a sequence of operations in content-stream syntax,
// one operation per line. Output is deterministic for identical input.
func Serialize(ops []Operation) []byte {
	if len(ops) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, op := range ops {
		for i, operand := range op.Operands {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(serializeOperand(operand))
		}
		if len(op.Operands) > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(op.Operator)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func serializeOperand(op Operand) []byte {
	switch v := op.(type) {
	case NumberOperand:
		// %g keeps minimal form while preserving integer vs float readability.
		return []byte(fmt.Sprintf("%g", v.Value))
	case NameOperand:
		return []byte("/" + v.Value)
	case StringOperand:
		return escapeLiteralString(v.Value)
	case ArrayOperand:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, it := range v.Values {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.Write(serializeOperand(it))
		}
		buf.WriteByte(']')
		return buf.Bytes()
	default:
		return []byte("null")
	}
}

func escapeLiteralString(raw []byte) []byte {
	var b bytes.Buffer
	b.WriteByte('(')
	for _, ch := range raw {
		switch ch {
		case '\\', '(', ')':
			b.WriteByte('\\')
			b.WriteByte(ch)
		case '\n':
			b.WriteString("\\n")
		case '\r':
			b.WriteString("\\r")
		case '\t':
			b.WriteString("\\t")
		default:
			if ch < 0x20 || ch >= 0x80 {
				fmt.Fprintf(&b, "\\%03o", ch)
			} else {
				b.WriteByte(ch)
			}
		}
	}
	b.WriteByte(')')
	return b.Bytes()
}
