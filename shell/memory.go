package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/smarty/happy/contracts"
)

// InMemoryFileSystem mirrors DiskFileSystem closely enough for tests: files
// can only be written into directories that exist, and any operation can be
// made to fail for a given path.
type InMemoryFileSystem struct {
	fileSystem map[string]*file

	ErrReadFile  map[string]error
	ErrWriteFile map[string]error
	ErrCreate    map[string]error
	ErrMkdirAll  map[string]error
	ErrDelete    map[string]error
}

func NewInMemoryFileSystem() *InMemoryFileSystem {
	return &InMemoryFileSystem{
		fileSystem:   map[string]*file{},
		ErrReadFile:  map[string]error{},
		ErrWriteFile: map[string]error{},
		ErrCreate:    map[string]error{},
		ErrMkdirAll:  map[string]error{},
		ErrDelete:    map[string]error{},
	}
}

func (this *InMemoryFileSystem) Stat(path string) (contracts.FileInfo, error) {
	path = clean(path)
	if isRoot(path) {
		return &file{path: path, dir: true, mod: InMemoryModTime}, nil
	}
	target, found := this.fileSystem[path]
	if !found {
		return nil, os.ErrNotExist
	}
	return target, nil
}

func (this *InMemoryFileSystem) Open(path string) (contracts.ReadAtCloser, error) {
	target, err := this.regularFile(path)
	if err != nil {
		return nil, err
	}
	return memoryArchive{Reader: bytes.NewReader(target.contents)}, nil
}

func (this *InMemoryFileSystem) Create(path string) (contracts.PendingFile, error) {
	path = clean(path)
	if err := this.ErrCreate[path]; err != nil {
		return nil, err
	}
	if err := this.writable(path); err != nil {
		return nil, err
	}
	return &pendingFile{fileSystem: this, path: path}, nil
}

func (this *InMemoryFileSystem) ReadFile(path string) ([]byte, error) {
	target, err := this.regularFile(path)
	if err != nil {
		return nil, err
	}
	if err = this.ErrReadFile[clean(path)]; err != nil {
		return nil, err
	}
	return append([]byte{}, target.contents...), nil
}

func (this *InMemoryFileSystem) WriteFile(path string, content []byte) error {
	path = clean(path)
	if err := this.ErrWriteFile[path]; err != nil {
		return err
	}
	return this.put(path, append([]byte{}, content...))
}

func (this *InMemoryFileSystem) MkdirAll(path string) error {
	path = clean(path)
	if err := this.ErrMkdirAll[path]; err != nil {
		return err
	}
	for current := path; !isRoot(current); current = filepath.Dir(current) {
		existing, found := this.fileSystem[current]
		if found && !existing.dir {
			return &os.PathError{Op: "mkdir", Path: current, Err: os.ErrExist}
		}
		if !found {
			this.fileSystem[current] = &file{path: current, dir: true, mod: InMemoryModTime}
		}
	}
	return nil
}

func (this *InMemoryFileSystem) Delete(path string) error {
	path = clean(path)
	if err := this.ErrDelete[path]; err != nil {
		return err
	}
	if _, found := this.fileSystem[path]; !found {
		return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
	}
	delete(this.fileSystem, path)
	return nil
}

// Listing returns every regular file, sorted by path.
func (this *InMemoryFileSystem) Listing() (files []contracts.FileInfo) {
	for _, item := range this.fileSystem {
		if !item.dir {
			files = append(files, item)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path() < files[j].Path() })
	return files
}

func (this *InMemoryFileSystem) put(path string, content []byte) error {
	if err := this.writable(path); err != nil {
		return err
	}
	this.fileSystem[path] = &file{path: path, contents: content, mod: InMemoryModTime}
	return nil
}

func (this *InMemoryFileSystem) writable(path string) error {
	if existing, found := this.fileSystem[path]; found && existing.dir {
		return &os.PathError{Op: "write", Path: path, Err: os.ErrExist}
	}
	if parent := filepath.Dir(path); !isRoot(parent) {
		if directory, found := this.fileSystem[parent]; !found || !directory.dir {
			return &os.PathError{Op: "write", Path: path, Err: os.ErrNotExist}
		}
	}
	return nil
}

func (this *InMemoryFileSystem) regularFile(path string) (*file, error) {
	target, found := this.fileSystem[clean(path)]
	if !found {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	if target.dir {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	return target, nil
}

func clean(path string) string {
	return filepath.Clean(path)
}

func isRoot(path string) bool {
	return path == "." || path == string(filepath.Separator) || strings.HasSuffix(path, ":"+string(filepath.Separator))
}

/////////////////////////////////////////////////

type memoryArchive struct{ *bytes.Reader }

func (this memoryArchive) Close() error { return nil }

/////////////////////////////////////////////////

var InMemoryModTime = time.Now()

type file struct {
	path     string
	contents []byte
	mod      time.Time
	dir      bool
}

func (this *file) Path() string       { return this.path }
func (this *file) Size() int64        { return int64(len(this.contents)) }
func (this *file) ModTime() time.Time { return this.mod }
func (this *file) IsDir() bool        { return this.dir }

/////////////////////////////////////////////////

type pendingFile struct {
	fileSystem *InMemoryFileSystem
	path       string
	contents   bytes.Buffer
}

func (this *pendingFile) Write(p []byte) (int, error) { return this.contents.Write(p) }
func (this *pendingFile) Discard() error              { return nil }

func (this *pendingFile) Close() error {
	return this.fileSystem.put(this.path, append([]byte{}, this.contents.Bytes()...))
}
