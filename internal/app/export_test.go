package app

// WatchRoot exposes watchRoot for testing.
func WatchRoot(a, b string) string {
	return watchRoot(a, b)
}

// Ignored exposes Session.ignored for testing.
func (s *Session) Ignored(path string) bool {
	return s.ignored(path)
}
