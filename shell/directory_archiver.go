package shell

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

// DiskDirectoryArchiver zips the regular files and directories below a root
// directory. Entry names are relative to the root and use '/' separators.
// Symlinks and other special files are left out.
type DiskDirectoryArchiver struct {
	level int
}

func NewDiskDirectoryArchiver(level int) *DiskDirectoryArchiver {
	return &DiskDirectoryArchiver{level: level}
}

func (this *DiskDirectoryArchiver) ArchiveDirectory(directory string) ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	writer.RegisterCompressor(zip.Deflate, func(target io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(target, this.level)
	})

	err := filepath.WalkDir(directory, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == directory {
			return nil
		}
		relative, err := filepath.Rel(directory, path)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		switch {
		case info.IsDir():
			_, err = writer.CreateHeader(&zip.FileHeader{
				Name:     filepath.ToSlash(relative) + "/",
				Modified: info.ModTime(),
				Method:   zip.Store,
			})
			return err
		case info.Mode().IsRegular():
			return this.archiveFile(writer, path, filepath.ToSlash(relative), info)
		default:
			return nil
		}
	})
	if err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (this *DiskDirectoryArchiver) archiveFile(writer *zip.Writer, path, name string, info fs.FileInfo) error {
	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = source.Close() }()

	target, err := writer.CreateHeader(&zip.FileHeader{
		Name:               name,
		Modified:           info.ModTime(),
		UncompressedSize64: uint64(info.Size()),
		Method:             zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = io.Copy(target, source)
	return err
}
