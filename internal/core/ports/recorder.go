package ports

import "go.trai.ch/annocache/internal/core/domain"

// Recorder counts resolution outcomes.
//
//go:generate go run go.uber.org/mock/mockgen -source=recorder.go -destination=mocks/mock_recorder.go -package=mocks
type Recorder interface {
	// Record counts one resolution of the given outcome.
	Record(outcome domain.Outcome)
}
