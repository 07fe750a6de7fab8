package shell

import (
	"os"
	"path/filepath"
	"time"

	"github.com/smarty/happy/contracts"
)

type DiskFileSystem struct{}

func NewDiskFileSystem() *DiskFileSystem {
	return &DiskFileSystem{}
}

func (this *DiskFileSystem) Stat(path string) (contracts.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return newFileInfo(path, info), nil
}

func (this *DiskFileSystem) Open(path string) (contracts.ReadAtCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &diskArchive{File: file, size: info.Size()}, nil
}

// Create writes into a temporary sibling of path. The file appears at path,
// complete, only once the returned file is closed, so a concurrent reader
// never observes a truncated or partially written file.
func (this *DiskFileSystem) Create(path string) (contracts.PendingFile, error) {
	temp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	return &pendingDiskFile{File: temp, target: path}, nil
}

func (this *DiskFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (this *DiskFileSystem) WriteFile(path string, content []byte) error {
	pending, err := this.Create(path)
	if err != nil {
		return err
	}
	if _, err = pending.Write(content); err != nil {
		_ = pending.Discard()
		return err
	}
	return pending.Close()
}

func (this *DiskFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (this *DiskFileSystem) Delete(path string) error {
	return os.Remove(path)
}

////////////////////////////////////////

type pendingDiskFile struct {
	*os.File
	target string
}

func (this *pendingDiskFile) Close() error {
	err := this.File.Chmod(0644)
	if closeErr := this.File.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(this.File.Name(), this.target)
	}
	if err != nil {
		_ = os.Remove(this.File.Name())
	}
	return err
}

func (this *pendingDiskFile) Discard() error {
	_ = this.File.Close()
	return os.Remove(this.File.Name())
}

////////////////////////////////////////

type diskArchive struct {
	*os.File
	size int64
}

func (this *diskArchive) Size() int64 { return this.size }

////////////////////////////////////////

type FileInfo struct {
	path string
	size int64
	mod  time.Time
	dir  bool
}

func newFileInfo(path string, info os.FileInfo) FileInfo {
	return FileInfo{path: path, size: info.Size(), mod: info.ModTime(), dir: info.IsDir()}
}

func (this FileInfo) Path() string       { return this.path }
func (this FileInfo) Size() int64        { return this.size }
func (this FileInfo) ModTime() time.Time { return this.mod }
func (this FileInfo) IsDir() bool        { return this.dir }
