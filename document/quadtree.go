package document

import (
	"github.com/wudi/pdfedit/model"
)

// quadTree is a spatial index over text-run bounding boxes, used to find
// the runs a region erase touches without scanning every run.
type quadTree struct {
	bounds   model.Rect
	capacity int
	entries  []quadEntry
	nodes    []*quadTree
}

type quadEntry struct {
	rect  model.Rect
	index int
}

func newQuadTree(bounds model.Rect, capacity int) *quadTree {
	return &quadTree{
		bounds:   bounds,
		capacity: capacity,
		entries:  make([]quadEntry, 0, capacity),
	}
}

func (qt *quadTree) insert(rect model.Rect, index int) bool {
	if !qt.bounds.Intersects(rect) {
		return false
	}

	if qt.nodes != nil {
		for _, node := range qt.nodes {
			if node.bounds.Contains(rect) {
				if node.insert(rect, index) {
					return true
				}
			}
		}
	}

	if qt.nodes == nil {
		if len(qt.entries) < qt.capacity {
			qt.entries = append(qt.entries, quadEntry{rect: rect, index: index})
			return true
		}
		qt.subdivide()
		old := qt.entries
		qt.entries = make([]quadEntry, 0, qt.capacity)
		for _, e := range old {
			qt.insert(e.rect, e.index)
		}
		return qt.insert(rect, index)
	}

	// Straddles child boundaries; it belongs to this node.
	qt.entries = append(qt.entries, quadEntry{rect: rect, index: index})
	return true
}

func (qt *quadTree) subdivide() {
	xMid := (qt.bounds.X0 + qt.bounds.X1) / 2
	yMid := (qt.bounds.Y0 + qt.bounds.Y1) / 2

	qt.nodes = []*quadTree{
		newQuadTree(model.Rect{X0: qt.bounds.X0, Y0: yMid, X1: xMid, Y1: qt.bounds.Y1}, qt.capacity),
		newQuadTree(model.Rect{X0: xMid, Y0: yMid, X1: qt.bounds.X1, Y1: qt.bounds.Y1}, qt.capacity),
		newQuadTree(model.Rect{X0: qt.bounds.X0, Y0: qt.bounds.Y0, X1: xMid, Y1: yMid}, qt.capacity),
		newQuadTree(model.Rect{X0: xMid, Y0: qt.bounds.Y0, X1: qt.bounds.X1, Y1: yMid}, qt.capacity),
	}
}

func (qt *quadTree) query(rect model.Rect) []int {
	var found []int
	if !qt.bounds.Intersects(rect) {
		return found
	}
	for _, e := range qt.entries {
		if e.rect.Intersects(rect) {
			found = append(found, e.index)
		}
	}
	if qt.nodes != nil {
		for _, node := range qt.nodes {
			found = append(found, node.query(rect)...)
		}
	}
	return found
}
