// export_test.go exports private functions for white-box testing.
package logger

// FormatError renders err the way Error does in text mode, without the slog envelope.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
