package watcher

import (
	"github.com/fsnotify/fsnotify"
	"go.trai.ch/annocache/internal/core/ports"
)

// ConvertEvent exposes convertEvent for testing.
func ConvertEvent(event fsnotify.Event) (ports.WatchEvent, bool) {
	return convertEvent(event)
}
