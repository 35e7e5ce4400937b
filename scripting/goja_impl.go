package scripting

import (
	"context"
	"fmt"
	"sync"

	"github.com/dop251/goja"

	"github.com/wudi/pdfedit/model"
)

// GojaRules evaluates a JavaScript rule script. The script must define a
// global function classify(item) that returns one of the strategy names
// ("center_preserve", "left_expand", "list_item", "tabular",
// "right_preserve", "generic") or null to defer to the built-in
// classifier. The item argument carries text, page, bbox, baseline,
// fontFamily, fontSize and color.
type GojaRules struct {
	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

// NewGojaRules compiles the rule script and resolves its classify
// function.
func NewGojaRules(script string) (*GojaRules, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("compiling rule script: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("classify"))
	if !ok {
		return nil, fmt.Errorf("rule script does not define classify(item)")
	}
	return &GojaRules{vm: vm, fn: fn}, nil
}

// StrategyFor runs classify(item) on the shared VM. Calls are serialized;
// a cancelled context interrupts a running script.
func (r *GojaRules) StrategyFor(ctx context.Context, item *model.TextItem) (model.AlignmentKind, bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return model.Generic, false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	done := make(chan struct{})
	defer close(done)
	defer r.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			r.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := r.fn(goja.Undefined(), r.vm.ToValue(r.itemObject(item)))
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return model.Generic, false, cause
			}
			return model.Generic, false, context.Canceled
		}
		return model.Generic, false, fmt.Errorf("evaluating classify rule: %w", err)
	}

	if val == nil || goja.IsNull(val) || goja.IsUndefined(val) {
		return model.Generic, false, nil
	}
	name := val.String()
	kind, ok := model.KindFromString(name)
	if !ok {
		return model.Generic, false, fmt.Errorf("classify rule returned unknown strategy %q", name)
	}
	return kind, true, nil
}

func (r *GojaRules) itemObject(item *model.TextItem) map[string]interface{} {
	return map[string]interface{}{
		"text":       item.Text,
		"page":       item.Page,
		"bbox":       []float64{item.BBox.X0, item.BBox.Y0, item.BBox.X1, item.BBox.Y1},
		"baseline":   item.Baseline,
		"fontFamily": item.FontFamily,
		"fontSize":   item.FontSize,
		"bold":       item.Flags.Bold,
		"boldness":   item.Flags.VisualBoldness,
		"color":      []float64{item.Color.R, item.Color.G, item.Color.B},
		"key":        item.MetadataKey,
	}
}
