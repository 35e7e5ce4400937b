package scripting

import (
	"context"

	"github.com/wudi/pdfedit/model"
)

// RuleEngine lets callers override the alignment classification of a text
// item with their own logic before a replacement plan is built.
type RuleEngine interface {
	// StrategyFor evaluates the rules against one item. The boolean
	// reports whether the rules chose a kind; false means the built-in
	// classifier's decision stands.
	StrategyFor(ctx context.Context, item *model.TextItem) (model.AlignmentKind, bool, error)
}
