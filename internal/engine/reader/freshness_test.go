package reader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports/mocks"
	"go.trai.ch/annocache/internal/engine/reader"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestEvaluator_LatestModification(t *testing.T) {
	t.Parallel()

	base := domain.MustDeclaration("App.Base")
	loggable := domain.MustDeclaration("App.Loggable")
	handler := domain.MustDeclaration("App.Handler")
	controller := domain.MustDeclaration("App.Controller")

	tests := []struct {
		name   string
		mtimes map[string]int64
		want   int64
	}{
		{
			name:   "own source is newest",
			mtimes: map[string]int64{"controller.go": 400, "base.go": 100, "loggable.go": 200, "handler.go": 300},
			want:   400,
		},
		{
			name:   "ancestor is newest",
			mtimes: map[string]int64{"controller.go": 100, "base.go": 500, "loggable.go": 200, "handler.go": 300},
			want:   500,
		},
		{
			name:   "composable unit is newest",
			mtimes: map[string]int64{"controller.go": 100, "base.go": 200, "loggable.go": 600, "handler.go": 300},
			want:   600,
		},
		{
			name:   "interface is newest",
			mtimes: map[string]int64{"controller.go": 100, "base.go": 200, "loggable.go": 300, "handler.go": 700},
			want:   700,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newFakeGraph()
			g.declare(controller, "controller.go", tt.mtimes["controller.go"])
			g.declare(base, "base.go", tt.mtimes["base.go"])
			g.declare(loggable, "loggable.go", tt.mtimes["loggable.go"])
			g.declare(handler, "handler.go", tt.mtimes["handler.go"])
			g.ancestors[controller] = base
			g.units[controller] = []domain.Declaration{loggable}
			g.interfaces[controller] = []domain.Declaration{handler}

			got, err := reader.NewEvaluator(g).LatestModification(context.Background(), controller)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_NoSourceArtifactContributesZero(t *testing.T) {
	t.Parallel()

	builtin := domain.MustDeclaration("Builtin.Countable")
	model := domain.MustDeclaration("App.Model")

	g := newFakeGraph()
	g.declare(model, "model.go", 42)
	g.interfaces[model] = []domain.Declaration{builtin}

	got, err := reader.NewEvaluator(g).LatestModification(context.Background(), model)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got)

	got, err = reader.NewEvaluator(g).LatestModification(context.Background(), builtin)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got)
}

func TestEvaluator_DiamondLooksUpSharedArtifactOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	graph := mocks.NewMockDeclarationGraph(ctrl)

	top := domain.MustDeclaration("App.Top")
	left := domain.MustDeclaration("App.Left")
	right := domain.MustDeclaration("App.Right")
	shared := domain.MustDeclaration("App.Shared")

	graph.EXPECT().SourceArtifact(top).Return("top.go", true).Times(1)
	graph.EXPECT().SourceArtifact(left).Return("left.go", true).Times(1)
	graph.EXPECT().SourceArtifact(right).Return("right.go", true).Times(1)
	graph.EXPECT().SourceArtifact(shared).Return("shared.go", true).Times(1)

	graph.EXPECT().ComposableUnits(top).Return([]domain.Declaration{left, right}).Times(1)
	graph.EXPECT().ComposableUnits(left).Return([]domain.Declaration{shared}).Times(1)
	graph.EXPECT().ComposableUnits(right).Return([]domain.Declaration{shared}).Times(1)
	graph.EXPECT().ComposableUnits(shared).Return(nil).Times(1)
	graph.EXPECT().Interfaces(gomock.Any()).Return(nil).Times(4)
	graph.EXPECT().Ancestor(gomock.Any()).Return(domain.Declaration{}, false).Times(4)

	graph.EXPECT().ModificationTime("top.go").Return(int64(10)).Times(1)
	graph.EXPECT().ModificationTime("left.go").Return(int64(20)).Times(1)
	graph.EXPECT().ModificationTime("right.go").Return(int64(30)).Times(1)
	graph.EXPECT().ModificationTime("shared.go").Return(int64(99)).Times(1)

	eval := reader.NewEvaluator(graph)
	got, err := eval.LatestModification(context.Background(), top)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got)

	// Memoized: no further graph calls.
	got, err = eval.LatestModification(context.Background(), right)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got)
}

func TestEvaluator_SharedArtifactAcrossDeclarations(t *testing.T) {
	t.Parallel()

	first := domain.MustDeclaration("App.First")
	second := domain.MustDeclaration("App.Second")

	g := newFakeGraph()
	g.declare(first, "both.go", 5)
	g.declare(second, "both.go", 5)

	eval := reader.NewEvaluator(g)
	_, err := eval.LatestModification(context.Background(), first)
	require.NoError(t, err)
	_, err = eval.LatestModification(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, 1, g.lookupCount("both.go"))
}

func TestEvaluator_ClearForgetsTimestamps(t *testing.T) {
	t.Parallel()

	decl := domain.MustDeclaration("App.Entity")
	g := newFakeGraph()
	g.declare(decl, "entity.go", 100)

	eval := reader.NewEvaluator(g)
	got, err := eval.LatestModification(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)

	g.touch("entity.go", 200)

	got, err = eval.LatestModification(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got, "memoized value is kept until Clear")

	eval.Clear()

	got, err = eval.LatestModification(context.Background(), decl)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got)
	assert.Equal(t, 2, g.lookupCount("entity.go"))
}

func TestEvaluator_CycleDetected(t *testing.T) {
	t.Parallel()

	a := domain.MustDeclaration("A")
	b := domain.MustDeclaration("B")

	g := newFakeGraph()
	g.declare(a, "a.go", 1)
	g.declare(b, "b.go", 2)
	g.units[a] = []domain.Declaration{b}
	g.units[b] = []domain.Declaration{a}

	_, err := reader.NewEvaluator(g).LatestModification(context.Background(), a)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestEvaluator_CancelledContext(t *testing.T) {
	t.Parallel()

	decl := domain.MustDeclaration("App.Entity")
	g := newFakeGraph()
	g.declare(decl, "entity.go", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := reader.NewEvaluator(g).LatestModification(ctx, decl)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, g.lookupCount("entity.go"))
}

func TestEvaluator_AnnotationArtifactCounts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	source := mocks.NewMockAnnotationSource(ctrl)
	source.EXPECT().AnnotationArtifact(gomock.Any()).Return("annotations.yaml", true).AnyTimes()

	g := newFakeGraph()
	g.declare(controller, "controller.go", 100)
	g.declare(base, "base.go", 200)
	g.ancestors[controller] = base
	g.touch("annotations.yaml", 300)

	e := reader.NewEvaluator(annotatedGraph{fakeGraph: g, MockAnnotationSource: source})
	ctx := context.Background()

	got, err := e.LatestModification(ctx, controller)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)
	assert.Equal(t, 1, g.lookupCount("annotations.yaml"), "shared by both declarations")

	g.touch("annotations.yaml", 900)
	got, err = e.LatestModification(ctx, controller)
	require.NoError(t, err)
	assert.Equal(t, int64(300), got)

	e.Clear()
	got, err = e.LatestModification(ctx, controller)
	require.NoError(t, err)
	assert.Equal(t, int64(900), got)
}
