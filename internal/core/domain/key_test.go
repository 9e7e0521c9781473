package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/annocache/internal/core/domain"
)

func TestKey_Formats(t *testing.T) {
	t.Parallel()

	decl := domain.MustDeclaration(`App\Controller`)

	assert.Equal(t, "App.Controller", domain.Key(domain.ClassTarget(decl)))
	assert.Equal(t, "App.Controller$name", domain.Key(domain.PropertyTarget(decl, "name")))
	assert.Equal(t, "App.Controller#index", domain.Key(domain.MethodTarget(decl, "index")))
	assert.Equal(t, "[C]App.Controller#index", domain.MarkerKey(domain.Key(domain.MethodTarget(decl, "index"))))
}

func TestKey_CollisionFreeAndStable(t *testing.T) {
	t.Parallel()

	controller := domain.MustDeclaration("App.Controller")
	controllerMethod := domain.MustDeclaration("App.Controller.method1")
	other := domain.MustDeclaration("App.Other")

	targets := []domain.Target{
		domain.ClassTarget(controller),
		domain.ClassTarget(controllerMethod),
		domain.ClassTarget(other),
		domain.MethodTarget(controller, "method1"),
		domain.MethodTarget(controller, "method2"),
		domain.PropertyTarget(controller, "method1"),
		domain.PropertyTarget(controller, "method2"),
		domain.MethodTarget(other, "method1"),
	}

	seen := make(map[string]domain.Target, len(targets)*2)
	for _, target := range targets {
		key := domain.Key(target)

		// Stable across calls.
		assert.Equal(t, key, domain.Key(target))

		prev, dup := seen[key]
		assert.False(t, dup, "%s collides with %s", target, prev)
		seen[key] = target

		marker := domain.MarkerKey(key)
		_, dup = seen[marker]
		assert.False(t, dup, "marker of %s collides", target)
		seen[marker] = target

		assert.True(t, domain.IsMarkerKey(marker))
		assert.False(t, domain.IsMarkerKey(key))
	}
}

func TestKey_EquivalentSpellingsShareKey(t *testing.T) {
	t.Parallel()

	a := domain.MethodTarget(domain.MustDeclaration(`App\Controller`), "index")
	b := domain.MethodTarget(domain.MustDeclaration("App/Controller"), "index")
	assert.Equal(t, domain.Key(a), domain.Key(b))
}

func TestValidateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"valid", "App.Controller#index", nil},
		{"empty", "", domain.ErrInvalidKey},
		{"blank", "   ", domain.ErrInvalidKey},
		{"newline", "App\nController", domain.ErrInvalidKey},
		{"carriage return", "App\rController", domain.ErrInvalidKey},
		{"max length", strings.Repeat("a", domain.MaxKeyLength), nil},
		{"too long", strings.Repeat("a", domain.MaxKeyLength+1), domain.ErrKeyTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := domain.ValidateKey(tt.key)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
