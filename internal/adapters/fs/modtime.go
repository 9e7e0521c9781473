package fs

import "os"

// ModTimes reads source artifact modification times from the file system.
type ModTimes struct{}

// NewModTimes creates a new ModTimes.
func NewModTimes() *ModTimes {
	return &ModTimes{}
}

// ModificationTime returns the modification time of path in Unix seconds,
// or 0 if it cannot be stat'ed.
func (m *ModTimes) ModificationTime(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}
