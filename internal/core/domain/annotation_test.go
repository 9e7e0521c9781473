package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/annocache/internal/core/domain"
)

func TestCollection_First(t *testing.T) {
	t.Parallel()

	c := domain.Collection{
		{Kind: "Route", Values: map[string]any{"path": "/a"}},
		{Kind: "Cache"},
		{Kind: "Route", Values: map[string]any{"path": "/b"}},
	}

	a, ok := c.First("Route")
	assert.True(t, ok)
	assert.Equal(t, "/a", a.Values["path"])

	_, ok = c.First("Missing")
	assert.False(t, ok)

	_, ok = domain.Collection(nil).First("Route")
	assert.False(t, ok)

	assert.Equal(t, []string{"Route", "Cache", "Route"}, c.Kinds())
}

func TestItem(t *testing.T) {
	t.Parallel()

	miss := domain.NewItem("k", nil, false)
	assert.Equal(t, "k", miss.Key())
	assert.False(t, miss.IsHit())
	assert.Nil(t, miss.Get())

	miss.Set([]byte("v"))
	assert.Equal(t, []byte("v"), miss.Get())
	assert.False(t, miss.IsHit(), "hit reflects the state at fetch time")
}
