package contracts

import (
	"io"
	"time"
)

type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type FileWriter interface {
	WriteFile(path string, content []byte) error
}

type FileCreator interface {
	Create(path string) (PendingFile, error)
}

// PendingFile collects the contents of a file. Close publishes them at the
// target path in a single step; Discard drops them and leaves the target as
// it was.
type PendingFile interface {
	io.WriteCloser
	Discard() error
}

type FileOpener interface {
	Open(path string) (ReadAtCloser, error)
}

type DirectoryMaker interface {
	MkdirAll(path string) error
}

type Deleter interface {
	Delete(path string) error
}

type FileChecker interface {
	Stat(path string) (FileInfo, error)
}

type FileInfo interface {
	Path() string
	Size() int64
	ModTime() time.Time
	IsDir() bool
}

type ReadAtCloser interface {
	ArchiveSource
	io.Closer
}
