package document

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/wudi/pdfedit/content"
)

// Serialize renders the document to deterministic bytes: identical
// documents serialize identically, so callers can compare output across
// operations that must not have mutated anything.
func (d *Document) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("%pdfedit\n")
	for i, page := range d.pages {
		fmt.Fprintf(&buf, "page %d [%g %g %g %g]\n",
			i+1, page.MediaBox.X0, page.MediaBox.Y0, page.MediaBox.X1, page.MediaBox.Y1)

		if len(page.Fonts) > 0 {
			names := make([]string, 0, len(page.Fonts))
			for name := range page.Fonts {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(&buf, "fonts %s\n", strings.Join(names, " "))
		}
		buf.Write(content.Serialize(page.Ops))
		buf.WriteString("endpage\n")
	}
	return buf.Bytes(), nil
}
