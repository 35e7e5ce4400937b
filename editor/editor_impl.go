package editor

import (
	"context"
	"fmt"

	"github.com/wudi/pdfedit/classify"
	"github.com/wudi/pdfedit/content"
	"github.com/wudi/pdfedit/document"
	"github.com/wudi/pdfedit/fonts"
	"github.com/wudi/pdfedit/layout"
	"github.com/wudi/pdfedit/model"
	"github.com/wudi/pdfedit/observability"
	"github.com/wudi/pdfedit/scripting"
)

type editorImpl struct {
	classifier  *classify.Classifier
	matcher     *fonts.Matcher
	rules       scripting.RuleEngine
	log         observability.Logger
	tracer      observability.Tracer
	rightMargin float64 // 0 means the layout engine's default gutter
}

// Option configures the editor.
type Option func(*editorImpl)

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(e *editorImpl) { e.log = l }
}

// WithTracer attaches a tracer.
func WithTracer(t observability.Tracer) Option {
	return func(e *editorImpl) { e.tracer = t }
}

// WithRules attaches a rule engine that may override the classifier's
// alignment decision per item.
func WithRules(r scripting.RuleEngine) Option {
	return func(e *editorImpl) { e.rules = r }
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(e *editorImpl) { e.classifier = c }
}

// WithMatcher replaces the default font matcher.
func WithMatcher(m *fonts.Matcher) Option {
	return func(e *editorImpl) { e.matcher = m }
}

// WithRightMargin overrides the usable right margin (an absolute x
// coordinate on the page).
func WithRightMargin(x float64) Option {
	return func(e *editorImpl) { e.rightMargin = x }
}

// New creates an editor with default components.
func New(opts ...Option) Editor {
	e := &editorImpl{
		classifier: classify.New(),
		log:        observability.NopLogger{},
		tracer:     observability.NopTracer(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.matcher == nil {
		e.matcher = fonts.NewMatcher(nil)
	}
	return e
}

func (e *editorImpl) ListTextItems(ctx context.Context, doc *document.Document, pageNum int) ([]model.TextItem, error) {
	ctx, span := e.tracer.StartSpan(ctx, "editor.list")
	defer span.Finish()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items, err := doc.ExtractTextItems(pageNum)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	e.log.Debug("extracted text items",
		observability.Int("page", pageNum),
		observability.Int(observability.MetricItemCount, len(items)))
	return items, nil
}

func (e *editorImpl) BuildPlan(ctx context.Context, doc *document.Document, key, newText string) (*model.ReplacementPlan, error) {
	ctx, span := e.tracer.StartSpan(ctx, "editor.plan")
	defer span.Finish()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, neighbors, err := e.findItem(doc, key)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	page, err := doc.Page(item.Page)
	if err != nil {
		return nil, err
	}
	pageWidth := page.MediaBox.Width()

	strategy := e.classifier.Classify(item, pageWidth, neighbors)
	if e.rules != nil {
		kind, ok, err := e.rules.StrategyFor(ctx, item)
		if err != nil {
			span.SetError(err)
			return nil, fmt.Errorf("rule engine for %q: %w", key, err)
		}
		if ok {
			strategy = classify.StrategyFor(kind, item, pageWidth)
		}
	}

	score := e.matcher.ScoreItem(item)
	item.Flags.VisualBoldness = score
	choice, f := e.matcher.Match(item, fonts.IsBold(score))
	if f == nil {
		return nil, &FontResolutionError{Family: item.FontFamily}
	}
	e.matcher.AdjustSpacing(&choice, f, item, newText, strategy.Kind)

	width := f.Measure(newText, item.FontSize, choice.CharSpacing, choice.WordSpacing)

	var opts []layout.Option
	if e.rightMargin > 0 {
		opts = append(opts, layout.WithRightMargin(e.rightMargin))
	}
	res := layout.NewEngine(pageWidth, opts...).Recompute(item, strategy, width)

	plan := &model.ReplacementPlan{
		Source:   item,
		NewText:  newText,
		Strategy: strategy,
		Font:     choice,
		NewBBox:  res.BBox,
		Baseline: res.Baseline,
		Color:    item.Color,
		Overflow: res.Overflow,
	}
	if plan.Overflow {
		e.log.Warn("replacement overflows the right margin",
			observability.String("key", key),
			observability.Float64("width", width))
	}
	e.log.Debug("built replacement plan",
		observability.String("key", key),
		observability.String("strategy", strategy.Kind.String()),
		observability.String("font", choice.Name))
	return plan, nil
}

func (e *editorImpl) Apply(ctx context.Context, doc *document.Document, plan *model.ReplacementPlan) error {
	ctx, span := e.tracer.StartSpan(ctx, "editor.apply")
	defer span.Finish()
	if err := ctx.Err(); err != nil {
		return err
	}
	if plan == nil || plan.Source == nil {
		return fmt.Errorf("apply: nil plan")
	}
	src := plan.Source

	f, ok := e.matcher.Library().ByName(plan.Font.Name)
	if !ok {
		return &FontResolutionError{Family: plan.Font.Family}
	}
	mode := content.TextFill
	if plan.Font.RenderMode == 2 {
		mode = content.TextFillStroke
	}

	doc.Lock()
	defer doc.Unlock()

	page, err := doc.Page(src.Page)
	if err != nil {
		return err
	}
	// Snapshot for all-or-nothing application.
	saved := append([]content.Operation(nil), page.Ops...)

	if err := doc.EraseRegion(src.Page, src.BBox); err != nil {
		page.Ops = saved
		span.SetError(err)
		return &MutationError{Key: src.MetadataKey, Err: err}
	}
	err = doc.DrawText(src.Page, plan.NewText,
		plan.NewBBox.X0, plan.Baseline, f, src.FontSize,
		plan.Color, plan.Font.CharSpacing, plan.Font.WordSpacing, mode)
	if err != nil {
		page.Ops = saved
		span.SetError(err)
		return &MutationError{Key: src.MetadataKey, Err: err}
	}

	e.log.Info("applied replacement",
		observability.String("key", src.MetadataKey),
		observability.String("strategy", plan.Strategy.Kind.String()))
	return nil
}

func (e *editorImpl) ReplaceText(ctx context.Context, doc *document.Document, key, newText string) (*model.ReplacementPlan, error) {
	plan, err := e.BuildPlan(ctx, doc, key, newText)
	if err != nil {
		return nil, err
	}
	if err := e.Apply(ctx, doc, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (e *editorImpl) RenderOutput(doc *document.Document) ([]byte, error) {
	return doc.Serialize()
}

// findItem locates an item by metadata key and returns it with the rest
// of its page as classification context. The key encodes the page, so
// only that page is extracted.
func (e *editorImpl) findItem(doc *document.Document, key string) (*model.TextItem, []*model.TextItem, error) {
	var pageNum, ordinal int
	if n, err := fmt.Sscanf(key, "page_%d_text_%d", &pageNum, &ordinal); n != 2 || err != nil {
		return nil, nil, &UnknownMetadataKeyError{Key: key}
	}
	// A key naming a page outside the document is a page error, not an
	// unknown key; the two stay distinguishable to callers.
	items, err := doc.ExtractTextItems(pageNum)
	if err != nil {
		return nil, nil, err
	}

	var found *model.TextItem
	neighbors := make([]*model.TextItem, 0, len(items))
	for i := range items {
		if items[i].MetadataKey == key {
			found = &items[i]
			continue
		}
		neighbors = append(neighbors, &items[i])
	}
	if found == nil {
		return nil, nil, &UnknownMetadataKeyError{Key: key}
	}
	return found, neighbors, nil
}
