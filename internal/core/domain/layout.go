package domain

import "path/filepath"

const (
	// CacheDirName is the name of the working directory of annocache.
	CacheDirName = ".annocache"

	// FileStoreDirName is the name of the file store directory.
	FileStoreDirName = "items"

	// BadgerDirName is the name of the badger store directory.
	BadgerDirName = "badger"

	// ConfigFileName is the name of the optional settings file.
	ConfigFileName = "annocache.yaml"

	// ManifestFileName is the name of the default declaration manifest.
	ManifestFileName = "annotations.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultFileStorePath returns the default directory of the file store.
// It joins .annocache and items.
func DefaultFileStorePath() string {
	return filepath.Join(CacheDirName, FileStoreDirName)
}

// DefaultBadgerPath returns the default directory of the badger store.
// It joins .annocache and badger.
func DefaultBadgerPath() string {
	return filepath.Join(CacheDirName, BadgerDirName)
}
