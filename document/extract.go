package document

import (
	"github.com/wudi/pdfedit/content"
	"github.com/wudi/pdfedit/fonts"
	"github.com/wudi/pdfedit/model"
)

// textRun ties an extracted item to the Tj operation that showed it, so
// erasure can splice out exactly that operation.
type textRun struct {
	item    model.TextItem
	opIndex int // index of the Tj in the page's operations
}

// ExtractTextItems returns the 1-based page's text runs with geometry,
// font, and color populated. Items are assigned stable metadata keys in
// extraction order.
func (d *Document) ExtractTextItems(pageNum int) ([]model.TextItem, error) {
	page, err := d.Page(pageNum)
	if err != nil {
		return nil, err
	}
	runs := d.textRuns(page, pageNum)
	items := make([]model.TextItem, 0, len(runs))
	for _, r := range runs {
		items = append(items, r.item)
	}
	return items, nil
}

// textRuns walks the page's operations with a text state machine: font
// and spacing persist across text objects, the text matrix resets at BT.
func (d *Document) textRuns(page *Page, pageNum int) []textRun {
	var (
		runs       []textRun
		font       *fonts.Font
		size       float64
		charSp     float64
		wordSp     float64
		color      model.Color
		x, y       float64
		blockStart = -1
	)

	for i, op := range page.Ops {
		switch op.Operator {
		case "BT":
			x, y = 0, 0
			blockStart = i
		case "ET":
			blockStart = -1
		case "Tf":
			if len(op.Operands) >= 2 {
				if name, ok := op.Operands[0].(content.NameOperand); ok {
					font = d.resolveFont(page, name.Value)
				}
				if num, ok := op.Operands[1].(content.NumberOperand); ok {
					size = num.Value
				}
			}
		case "Tc":
			if v, ok := numberAt(op, 0); ok {
				charSp = v
			}
		case "Tw":
			if v, ok := numberAt(op, 0); ok {
				wordSp = v
			}
		case "rg":
			if len(op.Operands) >= 3 {
				r, _ := numberAt(op, 0)
				g, _ := numberAt(op, 1)
				b, _ := numberAt(op, 2)
				color = model.Color{R: r, G: g, B: b}
			}
		case "g":
			if v, ok := numberAt(op, 0); ok {
				color = model.Color{R: v, G: v, B: v}
			}
		case "Tm":
			if len(op.Operands) >= 6 {
				e, _ := numberAt(op, 4)
				f, _ := numberAt(op, 5)
				x, y = e, f
			}
		case "Td", "TD":
			if len(op.Operands) >= 2 {
				dx, _ := numberAt(op, 0)
				dy, _ := numberAt(op, 1)
				x += dx
				y += dy
			}
		case "Tj":
			if blockStart < 0 || font == nil || size <= 0 || len(op.Operands) == 0 {
				continue
			}
			str, ok := op.Operands[len(op.Operands)-1].(content.StringOperand)
			if !ok || len(str.Value) == 0 {
				continue
			}
			text := string(str.Value)
			width := font.Measure(text, size, charSp, wordSp)
			ascent := font.Ascent() * size / 1000.0
			descent := font.Descent() * size / 1000.0

			item := model.TextItem{
				Page:       pageNum,
				Text:       text,
				BBox:       model.Rect{X0: x, Y0: y - descent, X1: x + width, Y1: y + ascent},
				Baseline:   y,
				FontFamily: font.Name,
				FontSize:   size,
				Flags: model.FontFlags{
					Bold:           font.Bold,
					Italic:         font.Italic,
					Serif:          font.Class == fonts.ClassSerif,
					Monospace:      font.Class == fonts.ClassMono,
					VisualBoldness: fonts.BoldnessScore(font.Bold, font.Name, font.StemWidthRatio),
				},
				Color:       color,
				CharSpacing: charSp,
				WordSpacing: wordSp,
				MetadataKey: model.ItemKey(pageNum, len(runs)),
			}
			runs = append(runs, textRun{item: item, opIndex: i})
			x += width
		}
	}
	return runs
}

func (d *Document) resolveFont(page *Page, name string) *fonts.Font {
	if f, ok := page.Fonts[name]; ok {
		return f
	}
	if f, ok := d.lib.ByName(name); ok {
		return f
	}
	return d.lib.Resolve(name, false, false)
}

func numberAt(op content.Operation, i int) (float64, bool) {
	if i >= len(op.Operands) {
		return 0, false
	}
	num, ok := op.Operands[i].(content.NumberOperand)
	return num.Value, ok
}
