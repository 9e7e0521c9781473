package reader_test

import (
	"context"
	"sync"
	"time"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports/mocks"
)

// fakePool is an in-memory item pool that records how it was written to.
type fakePool struct {
	mu       sync.Mutex
	items    map[string][]byte
	deferred []*domain.Item
	saves    int
	commits  int
}

func newFakePool() *fakePool {
	return &fakePool{items: make(map[string][]byte)}
}

func (p *fakePool) GetItem(_ context.Context, key string) (*domain.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.items[key]
	return domain.NewItem(key, v, ok), nil
}

func (p *fakePool) Save(_ context.Context, item *domain.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[item.Key()] = item.Get()
	p.saves++
	return nil
}

func (p *fakePool) SaveDeferred(_ context.Context, item *domain.Item) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deferred = append(p.deferred, item)
	return nil
}

func (p *fakePool) Commit(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, item := range p.deferred {
		p.items[item.Key()] = item.Get()
	}
	p.deferred = nil
	p.commits++
	return nil
}

func (p *fakePool) put(key string, value []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items[key] = value
}

func (p *fakePool) get(key string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.items[key]
	return v, ok
}

// fakeGraph is a mutable declaration graph counting modification time lookups.
type fakeGraph struct {
	mu         sync.Mutex
	sources    map[domain.Declaration]string
	mtimes     map[string]int64
	ancestors  map[domain.Declaration]domain.Declaration
	units      map[domain.Declaration][]domain.Declaration
	interfaces map[domain.Declaration][]domain.Declaration
	lookups    map[string]int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		sources:    make(map[domain.Declaration]string),
		mtimes:     make(map[string]int64),
		ancestors:  make(map[domain.Declaration]domain.Declaration),
		units:      make(map[domain.Declaration][]domain.Declaration),
		interfaces: make(map[domain.Declaration][]domain.Declaration),
		lookups:    make(map[string]int),
	}
}

func (g *fakeGraph) declare(decl domain.Declaration, source string, mtime int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sources[decl] = source
	g.mtimes[source] = mtime
}

func (g *fakeGraph) touch(source string, mtime int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mtimes[source] = mtime
}

func (g *fakeGraph) lookupCount(source string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lookups[source]
}

func (g *fakeGraph) SourceArtifact(decl domain.Declaration) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sources[decl]
	return s, ok
}

func (g *fakeGraph) ModificationTime(artifact string) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lookups[artifact]++
	return g.mtimes[artifact]
}

func (g *fakeGraph) Ancestor(decl domain.Declaration) (domain.Declaration, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	a, ok := g.ancestors[decl]
	return a, ok
}

func (g *fakeGraph) ComposableUnits(decl domain.Declaration) []domain.Declaration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.units[decl]
}

func (g *fakeGraph) Interfaces(decl domain.Declaration) []domain.Declaration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.interfaces[decl]
}

// annotatedGraph is a fake graph whose annotations live in a separate artifact.
type annotatedGraph struct {
	*fakeGraph
	*mocks.MockAnnotationSource
}

// pairingPool records commits that publish a record without its freshness
// marker. A deferred record waits briefly for a second record so that
// batches of concurrent resolutions get the chance to interleave.
type pairingPool struct {
	*fakePool
	arrived chan struct{}

	mu       sync.Mutex
	unpaired []string
}

func newPairingPool() *pairingPool {
	return &pairingPool{fakePool: newFakePool(), arrived: make(chan struct{})}
}

func (p *pairingPool) SaveDeferred(ctx context.Context, item *domain.Item) error {
	if !domain.IsMarkerKey(item.Key()) {
		select {
		case p.arrived <- struct{}{}:
		default:
			select {
			case <-p.arrived:
			case <-time.After(20 * time.Millisecond):
			}
		}
	}
	return p.fakePool.SaveDeferred(ctx, item)
}

func (p *pairingPool) Commit(ctx context.Context) error {
	p.fakePool.mu.Lock()
	pending := make(map[string]bool, len(p.fakePool.deferred))
	for _, item := range p.fakePool.deferred {
		pending[item.Key()] = true
	}
	p.fakePool.mu.Unlock()

	for key := range pending {
		if !domain.IsMarkerKey(key) && !pending[domain.MarkerKey(key)] {
			p.mu.Lock()
			p.unpaired = append(p.unpaired, key)
			p.mu.Unlock()
		}
	}
	return p.fakePool.Commit(ctx)
}

func (p *pairingPool) unpairedKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unpaired
}
