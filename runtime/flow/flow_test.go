package flow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/scoreflow/aggregator"
	"github.com/viant/scoreflow/evaluator"
	"github.com/viant/scoreflow/model/graph"
	"github.com/viant/scoreflow/model/label"
	"github.com/viant/scoreflow/model/score"
	"github.com/viant/scoreflow/model/types"
)

type logRecorder struct {
	mu    sync.Mutex
	lines []string
}

func (r *logRecorder) Printf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

type stubWorld struct {
	components map[types.EntityID]map[string]interface{}
}

func (w *stubWorld) Component(target types.EntityID, name string) (interface{}, bool) {
	value, ok := w.components[target][name]
	return value, ok
}

func (w *stubWorld) Resource(name string) (interface{}, bool) {
	return nil, false
}

func (w *stubWorld) Parent(target types.EntityID) (types.EntityID, bool) {
	return 0, false
}

func (w *stubWorld) Children(target types.EntityID) []types.EntityID {
	return nil
}

func TestRunSingleEvaluator(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Health": score.New(0.5)},
		},
	}
	output := label.Score("Health")
	subject := New()
	subject.AddNodes(graph.Evaluator(evaluator.Target("Health")).WithLabel(output))

	scores, err := subject.Run(context.Background(), world, 1)
	assert.NoError(t, err)
	result, ok := scores.Score(output)
	assert.True(t, ok)
	assert.InDelta(t, 0.5, result.Value(), 1e-9)
}

func TestRunAggregatorTree(t *testing.T) {
	world := &stubWorld{
		components: map[types.EntityID]map[string]interface{}{
			1: {"Health": score.New(0.5)},
		},
	}
	output := label.Score("Desire")
	subject := New()
	subject.AddNodes(graph.Aggregator(aggregator.Sum(),
		graph.Evaluator(evaluator.Target("Health")),
		graph.Evaluator(evaluator.Constant(score.New(0.25))),
	).WithLabel(output))

	scores, err := subject.Run(context.Background(), world, 1)
	assert.NoError(t, err)
	result, ok := scores.Score(output)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, result.Value(), 1e-9)
}

func TestRunMixedDepthChildrenKeepOrder(t *testing.T) {
	// the subtrahend is a plain leaf while the minuend is a deeper subtree;
	// the difference must still see minuend first
	output := label.Score("Margin")
	subject := New()
	subject.AddNodes(graph.Difference(
		graph.Aggregator(aggregator.Sum(),
			graph.Evaluator(evaluator.Constant(score.New(0.3))),
			graph.Evaluator(evaluator.Constant(score.New(0.4))),
		),
		graph.Evaluator(evaluator.Constant(score.New(0.2))),
	).WithLabel(output))

	scores, err := subject.Run(context.Background(), &stubWorld{}, 1)
	assert.NoError(t, err)
	result, _ := scores.Score(output)
	assert.InDelta(t, 0.5, result.Value(), 1e-9)
}

type visitRecorder struct {
	names []string
}

func (r *visitRecorder) record(name string) {
	r.names = append(r.names, name)
}

type recordingEvaluator struct {
	name     string
	recorder *visitRecorder
}

func (e *recordingEvaluator) Name() string {
	return e.name
}

func (e *recordingEvaluator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (e *recordingEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	e.recorder.record(e.name)
	return score.New(0.01)
}

type recordingAggregator struct {
	name     string
	recorder *visitRecorder
}

func (a *recordingAggregator) Name() string {
	return a.name
}

func (a *recordingAggregator) Init(ctx context.Context, world types.World) error {
	return nil
}

func (a *recordingAggregator) Aggregate(aggregation types.Aggregation) score.Score {
	a.recorder.record(a.name)
	return score.Sum(aggregation.Scores)
}

// recordingTree builds a uniform tree of the given depth and width, recording
// every child edge in parents.
func recordingTree(recorder *visitRecorder, name string, depth, width int, parents map[string]string) *graph.NodeConfig {
	if depth == 0 {
		return graph.Evaluator(&recordingEvaluator{name: name, recorder: recorder})
	}
	children := make([]*graph.NodeConfig, 0, width)
	for i := 0; i < width; i++ {
		child := fmt.Sprintf("%s.%d", name, i)
		parents[child] = name
		children = append(children, recordingTree(recorder, child, depth-1, width, parents))
	}
	return graph.Aggregator(&recordingAggregator{name: name, recorder: recorder}, children...)
}

func TestRunDeepWideTreeChildrenEvaluateFirst(t *testing.T) {
	recorder := &visitRecorder{}
	parents := map[string]string{}
	root := recordingTree(recorder, "root", 3, 3, parents)

	subject := New()
	subject.AddNodes(root.WithLabel(label.Score("Root")))
	_, err := subject.Run(context.Background(), &stubWorld{}, 1)
	assert.NoError(t, err)

	// 3 levels of aggregators over 27 leaves
	assert.Len(t, recorder.names, 40)
	positions := map[string]int{}
	for index, name := range recorder.names {
		positions[name] = index
	}
	for child, parent := range parents {
		assert.Less(t, positions[child], positions[parent], "%s must evaluate before %s", child, parent)
	}
}

func TestRunInnerLabeledNodeScored(t *testing.T) {
	inner := label.Score("Inner")
	outer := label.Score("Outer")
	subject := New()
	subject.AddNodes(graph.Aggregator(aggregator.Sum(),
		graph.Evaluator(evaluator.Constant(score.New(0.2))).WithLabel(inner),
		graph.Evaluator(evaluator.Constant(score.New(0.3))),
	).WithLabel(outer))

	scores, err := subject.Run(context.Background(), &stubWorld{}, 1)
	assert.NoError(t, err)
	innerScore, _ := scores.Score(inner)
	outerScore, _ := scores.Score(outer)
	assert.InDelta(t, 0.2, innerScore.Value(), 1e-9)
	assert.InDelta(t, 0.5, outerScore.Value(), 1e-9)
}

func TestAddNodesSkipsUnlabeledTopLevel(t *testing.T) {
	recorder := &logRecorder{}
	subject := New(WithLogger(recorder))
	subject.AddNodes(graph.Evaluator(evaluator.Constant(score.New(0.5))))

	assert.Equal(t, 0, subject.Size())
	assert.Len(t, recorder.lines, 1)
	assert.Contains(t, recorder.lines[0], "[WARN]")
}

func TestAddNodesKeepsFirstLabelBinding(t *testing.T) {
	recorder := &logRecorder{}
	output := label.Score("Collision")
	subject := New(WithLogger(recorder))
	subject.AddNodes(
		graph.Evaluator(evaluator.Constant(score.New(0.1))).WithLabel(output),
		graph.Evaluator(evaluator.Constant(score.New(0.9))).WithLabel(output),
	)

	scores, err := subject.Run(context.Background(), &stubWorld{}, 1)
	assert.NoError(t, err)
	result, _ := scores.Score(output)
	assert.InDelta(t, 0.1, result.Value(), 1e-9)
	assert.Len(t, recorder.lines, 1)
	assert.Contains(t, recorder.lines[0], "[ERROR]")
}

func TestRunReadonlyBeforeInitPanics(t *testing.T) {
	subject := New()
	subject.AddNodes(graph.Evaluator(evaluator.Constant(score.New(0.5))).WithLabel(label.Score("Pending")))
	assert.Panics(t, func() {
		subject.RunReadonly(&stubWorld{}, 1)
	})
}

type failingEvaluator struct {
	attempts int
}

func (e *failingEvaluator) Name() string {
	return "failing"
}

func (e *failingEvaluator) Init(ctx context.Context, world types.World) error {
	e.attempts++
	if e.attempts == 1 {
		return errors.New("transient")
	}
	return nil
}

func (e *failingEvaluator) Evaluate(evaluation types.Evaluation) score.Score {
	return score.New(0.5)
}

func TestInitRetriesFailedNode(t *testing.T) {
	subject := New()
	subject.AddNodes(graph.Evaluator(&failingEvaluator{}).WithLabel(label.Score("Flaky")))

	assert.Error(t, subject.Init(context.Background(), &stubWorld{}))
	assert.False(t, subject.Initialized())
	assert.NoError(t, subject.Init(context.Background(), &stubWorld{}))
	assert.True(t, subject.Initialized())
}

func TestFlowsTakeReturn(t *testing.T) {
	flowLabel := label.Flow("npc")
	registry := NewFlows()
	registry.Insert(flowLabel, New())

	taken, err := registry.Take(flowLabel)
	assert.NoError(t, err)

	_, err = registry.Take(flowLabel)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, flowLabel, notFound.Label)

	registry.Return(flowLabel, taken)
	_, ok := registry.Entry(flowLabel)
	assert.True(t, ok)
}

func TestFlowsScope(t *testing.T) {
	flowLabel := label.Flow("scoped")
	registry := NewFlows()
	registry.Insert(flowLabel, New())

	err := registry.Scope(flowLabel, func(flow *Flow) error {
		_, err := registry.Take(flowLabel)
		assert.Error(t, err)
		return errors.New("scope failure")
	})
	assert.Error(t, err)

	// the flow is back even after a failing scope
	_, ok := registry.Entry(flowLabel)
	assert.True(t, ok)
}

func TestFlowsAddNodesAndInit(t *testing.T) {
	flowLabel := label.Flow("configured")
	registry := NewFlows()
	registry.Insert(flowLabel, New())

	err := registry.AddNodes(flowLabel, graph.Evaluator(evaluator.Constant(score.New(0.5))).WithLabel(label.Score("Out")))
	assert.NoError(t, err)
	assert.NoError(t, registry.Init(context.Background(), flowLabel, &stubWorld{}))

	flow, _ := registry.Entry(flowLabel)
	assert.True(t, flow.Initialized())
}

func TestFlowsEnsure(t *testing.T) {
	flowLabel := label.Flow("lazy")
	registry := NewFlows()

	created := registry.Ensure(flowLabel)
	assert.NotNil(t, created)
	assert.Same(t, created, registry.Ensure(flowLabel))
}

func TestFlowsReturnOverwriteWarns(t *testing.T) {
	recorder := &logRecorder{}
	flowLabel := label.Flow("contended")
	registry := NewFlows(WithFlowsLogger(recorder))
	registry.Insert(flowLabel, New())

	taken, err := registry.Take(flowLabel)
	assert.NoError(t, err)
	registry.Insert(flowLabel, New())
	registry.Return(flowLabel, taken)

	assert.NotEmpty(t, recorder.lines)
	assert.Contains(t, recorder.lines[len(recorder.lines)-1], "[WARN]")
}
