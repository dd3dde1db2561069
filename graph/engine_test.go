package graph

import (
	"math"
	"reflect"
	"testing"

	"github.com/kbukum/automl/component"
	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/frame"
)

func TestFit_RequiresInstantiate(t *testing.T) {
	h := newHarness(t)
	g, err := Build(Linear("Shift", "Recorder"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantCode(t, g.Fit(testFrame(t), frame.Target{0, 0, 1, 1}), errors.ErrCodeGraphNotInstantiated)
	if _, _, err := g.Transform(testFrame(t), nil); !errors.HasCode(err, errors.ErrCodeGraphNotInstantiated) {
		t.Fatalf("Transform before Instantiate: %v", err)
	}
	if _, err := g.Predict(testFrame(t)); !errors.HasCode(err, errors.ErrCodeGraphNotInstantiated) {
		t.Fatalf("Predict before Instantiate: %v", err)
	}
}

func TestPredict_RequiresFit(t *testing.T) {
	h := newHarness(t)
	g, err := Build(Linear("Shift", "Recorder"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if _, err := g.Predict(testFrame(t)); !errors.HasCode(err, errors.ErrCodeGraphNotFitted) {
		t.Fatalf("Predict before Fit: %v", err)
	}
	if _, _, err := g.Transform(testFrame(t), nil); !errors.HasCode(err, errors.ErrCodeGraphNotFitted) {
		t.Fatalf("Transform before Fit: %v", err)
	}
}

func TestFitPredict_LinearChain(t *testing.T) {
	h := newHarness(t)
	g, err := Build(Linear("Shift", "Recorder"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(Parameters{"Recorder": {"value": 7.0}}); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	X := testFrame(t)
	y := frame.Target{0, 0, 1, 1}
	if err := g.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if !g.Fitted() {
		t.Fatal("graph must be fitted after Fit")
	}

	// The estimator must see the shifted features, not the root input.
	est := h.estimators[0]
	col, ok := est.fittedX.Column("a")
	if !ok {
		t.Fatal("fitted frame missing column a")
	}
	if want := []float64{2, 3, 4, 5}; !reflect.DeepEqual(col.Data, want) {
		t.Fatalf("estimator saw %v, want %v", col.Data, want)
	}

	preds, err := g.Predict(X)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if want := (frame.Target{7, 7, 7, 7}); !reflect.DeepEqual(preds, want) {
		t.Fatalf("Predict = %v, want %v", preds, want)
	}
}

func TestFit_DiamondRunsSharedNodeOnce(t *testing.T) {
	h := newHarness(t)
	def := Definition{Nodes: NodeList{
		{Name: "Root", Component: "Shift", Inputs: []string{"X", "y"}},
		{Name: "Left", Component: "Shift", Inputs: []string{"Root.x", "y"}},
		{Name: "Right", Component: "Shift", Inputs: []string{"Root.x", "y"}},
		{Name: "Model", Component: "Recorder", Inputs: []string{"Left.x", "Right.x", "y"}},
	}}
	g, err := Build(def, h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	X := testFrame(t)
	y := frame.Target{0, 0, 1, 1}
	if err := g.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for i, tr := range h.transformers {
		if tr.fits != 1 || tr.transforms != 1 {
			t.Fatalf("transformer %d: fits=%d transforms=%d, want 1/1", i, tr.fits, tr.transforms)
		}
	}
	if _, err := g.Predict(X); err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i, tr := range h.transformers {
		if tr.transforms != 2 {
			t.Fatalf("transformer %d: transforms=%d after predict, want 2", i, tr.transforms)
		}
		if tr.fits != 1 {
			t.Fatalf("transformer %d: fits=%d after predict, want 1", i, tr.fits)
		}
	}

	// Both branches feed the estimator, so it sees twice the columns.
	if got := h.estimators[0].fittedX.NumCols(); got != 2*X.NumCols() {
		t.Fatalf("estimator saw %d columns, want %d", got, 2*X.NumCols())
	}
}

func TestFit_FeatureConcatFollowsDeclarationOrder(t *testing.T) {
	h := newHarness(t)
	def := Definition{Nodes: NodeList{
		{Name: "Small", Component: "Shift", Inputs: []string{"X", "y"}},
		{Name: "Big", Component: "Shift", Inputs: []string{"X", "y"}},
		{Name: "Model", Component: "Recorder", Inputs: []string{"Big.x", "Small.x", "y"}},
	}}
	g, err := Build(def, h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	params := Parameters{"Small": {"delta": 1.0}, "Big": {"delta": 100.0}}
	if err := g.Instantiate(params); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if err := g.Fit(testFrame(t), frame.Target{0, 0, 1, 1}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// "Big.x" is declared first, so its columns come first.
	got := h.estimators[0].fittedX.Columns()
	if len(got) != 4 {
		t.Fatalf("estimator saw %d columns, want 4", len(got))
	}
	if got[0].Data[0] != 101 || got[2].Data[0] != 2 {
		t.Fatalf("column order wrong: first=%v third=%v", got[0].Data, got[2].Data)
	}
}

func TestFit_ExplicitTargetPropagation(t *testing.T) {
	h := newHarness(t)
	def := Definition{Nodes: NodeList{
		{Name: "S", Component: "ShiftTarget", Inputs: []string{"X", "y"}},
		{Name: "Model", Component: "Recorder", Inputs: []string{"S.x", "S.y"}},
	}}
	g, err := Build(def, h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	y := frame.Target{1, 2, 3, 4}
	if err := g.Fit(testFrame(t), y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if want := (frame.Target{11, 12, 13, 14}); !reflect.DeepEqual(h.estimators[0].fittedY, want) {
		t.Fatalf("estimator saw target %v, want %v", h.estimators[0].fittedY, want)
	}
}

func TestFit_TargetFollowsDependencyChain(t *testing.T) {
	h := newHarness(t)
	// The consumer sits downstream of a target producer, so a plain "y"
	// input resolves to the producer's re-aligned target.
	def := Definition{Nodes: NodeList{
		{Name: "S", Component: "ShiftTarget", Inputs: []string{"X", "y"}},
		{Name: "Model", Component: "Recorder", Inputs: []string{"S.x", "y"}},
	}}
	g, err := Build(def, h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	y := frame.Target{1, 2, 3, 4}
	if err := g.Fit(testFrame(t), y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if want := (frame.Target{11, 12, 13, 14}); !reflect.DeepEqual(h.estimators[0].fittedY, want) {
		t.Fatalf("estimator saw target %v, want %v", h.estimators[0].fittedY, want)
	}
}

func TestFit_TargetPropagatesThroughIntermediates(t *testing.T) {
	h := newHarness(t)
	// The producer reaches the model through a plain transformer; the
	// re-aligned target must still arrive.
	def := Definition{Nodes: NodeList{
		{Name: "S", Component: "ShiftTarget", Inputs: []string{"X", "y"}},
		{Name: "Mid", Component: "Shift", Inputs: []string{"S.x", "y"}},
		{Name: "Model", Component: "Recorder", Inputs: []string{"Mid.x", "y"}},
	}}
	g, err := Build(def, h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	y := frame.Target{1, 2, 3, 4}
	if err := g.Fit(testFrame(t), y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if want := (frame.Target{11, 12, 13, 14}); !reflect.DeepEqual(h.estimators[0].fittedY, want) {
		t.Fatalf("estimator saw target %v, want %v", h.estimators[0].fittedY, want)
	}
}

func TestTransform_TransformerTerminus(t *testing.T) {
	h := newHarness(t)
	g, err := Build(Linear("Shift", "Shift"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	X := testFrame(t)
	y := frame.Target{0, 0, 1, 1}
	if err := g.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	outX, outY, err := g.Transform(X, y)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	col, _ := outX.Column("a")
	if want := []float64{3, 4, 5, 6}; !reflect.DeepEqual(col.Data, want) {
		t.Fatalf("Transform column a = %v, want %v", col.Data, want)
	}
	if !reflect.DeepEqual(outY, y) {
		t.Fatalf("Transform target = %v, want %v", outY, y)
	}

	// Repeated transforms on fixed state give identical output.
	againX, _, err := g.Transform(X, y)
	if err != nil {
		t.Fatalf("Transform again: %v", err)
	}
	colAgain, _ := againX.Column("a")
	if !reflect.DeepEqual(colAgain.Data, col.Data) {
		t.Fatalf("Transform not idempotent: %v vs %v", colAgain.Data, col.Data)
	}
}

func TestMethodNotSupported(t *testing.T) {
	h := newHarness(t)

	// Estimator terminus cannot transform.
	g, err := Build(Linear("Shift", "Recorder"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if err := g.Fit(testFrame(t), frame.Target{0, 0, 1, 1}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	_, _, err = g.Transform(testFrame(t), nil)
	wantCode(t, err, errors.ErrCodeMethodNotSupported)

	// Transformer terminus cannot predict.
	g2, err := Build(Linear("Shift"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g2.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if err := g2.Fit(testFrame(t), frame.Target{0, 0, 1, 1}); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	_, err = g2.Predict(testFrame(t))
	wantCode(t, err, errors.ErrCodeMethodNotSupported)
}

// transformingPredictor carries both capabilities, so the engine has to
// dispatch on the requested operation at the terminus.
type transformingPredictor struct {
	countingTransformer
	value float64
}

func (c *transformingPredictor) Name() string { return "Hybrid" }

func (c *transformingPredictor) Predict(X frame.Frame) (frame.Target, error) {
	out := make(frame.Target, X.NumRows())
	for i := range out {
		out[i] = c.value
	}
	return out, nil
}

func TestPredict_TerminusWithBothCapabilities(t *testing.T) {
	h := newHarness(t)
	if err := h.registry.Register(component.Descriptor{
		Name: "Hybrid",
		Kind: component.KindTransformer,
		New: func(component.Parameters) (component.Component, error) {
			return &transformingPredictor{countingTransformer: countingTransformer{delta: 1}, value: 42}, nil
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	g, err := Build(Linear("Shift", "Hybrid"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}
	if err := g.Fit(testFrame(t), frame.Target{1, 2, 3, 4}); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	preds, err := g.Predict(testFrame(t))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if !reflect.DeepEqual(preds, frame.Target{42, 42, 42, 42}) {
		t.Fatalf("Predict = %v, want constant predictions", preds)
	}

	// The same terminus still transforms when asked to.
	outX, _, err := g.Transform(testFrame(t), nil)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	col := outX.Columns()[0]
	if col.Data[0] != 3 {
		t.Fatalf("Transform col[0][0] = %g, want 3", col.Data[0])
	}
}

func TestFitFeatures_ExposesTerminusInputs(t *testing.T) {
	h := newHarness(t)
	g, err := Build(Linear("Shift", "Recorder"), h.registry)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	X := testFrame(t)
	y := frame.Target{1, 2, 3, 4}
	outX, outY, err := g.FitFeatures(X, y)
	if err != nil {
		t.Fatalf("FitFeatures: %v", err)
	}
	col, _ := outX.Column("a")
	if want := []float64{2, 3, 4, 5}; !reflect.DeepEqual(col.Data, want) {
		t.Fatalf("FitFeatures column a = %v, want %v", col.Data, want)
	}
	if !reflect.DeepEqual(outY, y) {
		t.Fatalf("FitFeatures target = %v, want %v", outY, y)
	}

	// Upstream nodes are fitted but the estimator never runs.
	if h.transformers[0].fits != 1 {
		t.Fatalf("upstream fits = %d, want 1", h.transformers[0].fits)
	}
	if len(h.estimators) != 1 || h.estimators[0].fits != 0 {
		t.Fatal("terminus must stay unfitted after FitFeatures")
	}
	if g.Fitted() {
		t.Fatal("FitFeatures must not mark the graph fitted")
	}
}

func TestFit_WithBuiltins(t *testing.T) {
	def := Definition{Nodes: NodeList{
		{Name: "Imputer", Component: "SimpleImputer", Inputs: []string{"X", "y"}},
		{Name: "Scaler", Component: "StandardScaler", Inputs: []string{"Imputer.x", "y"}},
		{Name: "Model", Component: "LinearRegressor", Inputs: []string{"Scaler.x", "y"}},
	}}
	g, err := Build(def, component.DefaultRegistry())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(Parameters{"Imputer": {"impute_strategy": "mean"}}); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	X := frame.MustNew(
		frame.Column{Name: "a", Data: []float64{1, 2, math.NaN(), 4}},
		frame.Column{Name: "b", Data: []float64{2, 4, 6, 8}},
	)
	y := frame.Target{3, 6, 9, 12}
	if err := g.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	preds, err := g.Predict(X)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(preds) != 4 {
		t.Fatalf("Predict returned %d rows, want 4", len(preds))
	}
	for i, p := range preds {
		if math.Abs(p-y[i]) > 1e-6 {
			t.Fatalf("pred[%d] = %g, want %g", i, p, y[i])
		}
	}
}

func TestFit_SamplerReducesTrainingRows(t *testing.T) {
	def := Definition{Nodes: NodeList{
		{Name: "Sampler", Component: "Undersampler", Inputs: []string{"X", "y"}},
		{Name: "Model", Component: "BaselineClassifier", Inputs: []string{"Sampler.x", "Sampler.y"}},
	}}
	g, err := Build(def, component.DefaultRegistry())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := g.Instantiate(nil); err != nil {
		t.Fatalf("Instantiate: %v", err)
	}

	X := frame.MustNew(frame.Column{Name: "a", Data: []float64{1, 2, 3, 4, 5, 6}})
	y := frame.Target{0, 0, 0, 0, 1, 1}
	if err := g.Fit(X, y); err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// Prediction uses the full feature frame; sampling only affects training.
	preds, err := g.Predict(X)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(preds) != 6 {
		t.Fatalf("Predict returned %d rows, want 6", len(preds))
	}
}
