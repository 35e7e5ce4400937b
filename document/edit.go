package document

import (
	"fmt"

	"github.com/wudi/pdfedit/content"
	"github.com/wudi/pdfedit/fonts"
	"github.com/wudi/pdfedit/model"
)

// EraseRegion removes the text-showing operations whose extent intersects
// the rectangle. An erased Tj is replaced by an equivalent positioning
// displacement, so sibling runs sharing the same text object keep their
// places. Erasing a region with no content is a no-op, so repeated
// erasure of the same region is idempotent. The caller is expected to
// hold the document lock.
func (d *Document) EraseRegion(pageNum int, region model.Rect) error {
	page, err := d.Page(pageNum)
	if err != nil {
		return err
	}
	runs := d.textRuns(page, pageNum)
	if len(runs) == 0 {
		return nil
	}

	idx := newQuadTree(page.MediaBox, 10)
	for i, r := range runs {
		idx.insert(r.item.BBox, i)
	}
	for _, h := range idx.query(region) {
		r := runs[h]
		page.Ops[r.opIndex] = content.Op("Td",
			content.Number(r.item.BBox.Width()), content.Number(0))
	}
	return nil
}

// DrawText renders text at the baseline anchor with the given variant,
// size, color, and spacing. Drawing is appended as one self-contained
// text object. The caller is expected to hold the document lock.
func (d *Document) DrawText(pageNum int, text string, x, baseline float64, f *fonts.Font, size float64, col model.Color, charSpacing, wordSpacing float64, mode content.TextRenderMode) error {
	page, err := d.Page(pageNum)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("draw text on page %d: nil font", pageNum)
	}
	if size <= 0 {
		return fmt.Errorf("draw text on page %d: font size %g must be positive", pageNum, size)
	}
	if text == "" {
		return nil
	}
	page.Fonts[f.Name] = f

	ops := []content.Operation{
		content.Op("BT"),
		content.Op("Tf", content.Name(f.Name), content.Number(size)),
	}
	if charSpacing != 0 {
		ops = append(ops, content.Op("Tc", content.Number(charSpacing)))
	}
	if wordSpacing != 0 {
		ops = append(ops, content.Op("Tw", content.Number(wordSpacing)))
	}
	if mode != content.TextFill {
		ops = append(ops, content.Op("Tr", content.Number(float64(mode))))
	}
	ops = append(ops, content.Op("Tm",
		content.Number(1), content.Number(0),
		content.Number(0), content.Number(1),
		content.Number(x), content.Number(baseline),
	))
	ops = append(ops, content.Op("rg", content.Number(col.R), content.Number(col.G), content.Number(col.B)))
	if mode == content.TextFillStroke {
		ops = append(ops, content.Op("RG", content.Number(col.R), content.Number(col.G), content.Number(col.B)))
	}
	ops = append(ops,
		content.Op("Tj", content.Str([]byte(text))),
		content.Op("ET"),
	)

	page.Ops = append(page.Ops, ops...)
	return nil
}
