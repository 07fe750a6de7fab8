package core

import (
	"bytes"
	"fmt"
	"hash"
	"io"
	"path/filepath"

	"github.com/smarty/happy/contracts"
)

// FileContentIntegrityCheck re-reads every extracted file and compares its
// digest with the checksum recorded during extraction. It does nothing
// unless enabled.
type FileContentIntegrityCheck struct {
	hasher     func() hash.Hash
	fileSystem contracts.FileOpener
	enabled    bool
}

func NewFileContentIntegrityCheck(hasher func() hash.Hash, fileSystem contracts.FileOpener, enabled bool) *FileContentIntegrityCheck {
	return &FileContentIntegrityCheck{hasher: hasher, fileSystem: fileSystem, enabled: enabled}
}

func (this *FileContentIntegrityCheck) Verify(listing []contracts.ArchiveItem, localPath string) error {
	if !this.enabled {
		return nil
	}
	for _, item := range listing {
		if item.Directory {
			continue
		}
		checksum, err := this.checksum(filepath.Join(localPath, item.Path))
		if err != nil {
			return contracts.NewIOError("verify extracted contents", err)
		}
		if !bytes.Equal(checksum, item.Checksum) {
			return contracts.NewExtractionError("verify extracted contents",
				fmt.Errorf("checksum mismatch for \"%s\"", filepath.Join(localPath, item.Path)))
		}
	}
	return nil
}

func (this *FileContentIntegrityCheck) checksum(path string) ([]byte, error) {
	reader, err := this.fileSystem.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	hasher := this.hasher()
	if _, err = io.Copy(hasher, io.NewSectionReader(reader, 0, reader.Size())); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}
