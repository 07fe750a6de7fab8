package core

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/smarty/happy/contracts"
)

type FileListingIntegrityChecker struct {
	fileSystem contracts.FileChecker
	logger     *log.Logger
}

func NewFileListingIntegrityChecker(fileSystem contracts.FileChecker, logger *log.Logger) *FileListingIntegrityChecker {
	return &FileListingIntegrityChecker{fileSystem: fileSystem, logger: orDefaultLogger(logger)}
}

// Verify confirms that every file in the listing exists below localPath with
// the size that was extracted.
func (this *FileListingIntegrityChecker) Verify(listing []contracts.ArchiveItem, localPath string) error {
	var files int
	var total int64
	for _, item := range listing {
		if item.Directory {
			continue
		}
		fullPath := filepath.Join(localPath, item.Path)
		fileInfo, err := this.fileSystem.Stat(fullPath)
		if errors.Is(err, os.ErrNotExist) {
			return contracts.NewExtractionError("verify extraction", fmt.Errorf("filename not found for \"%s\"", fullPath))
		}
		if err != nil {
			return contracts.NewIOError("verify extraction", err)
		}
		if item.Size != fileInfo.Size() {
			return contracts.NewExtractionError("verify extraction",
				fmt.Errorf("file size mismatch for \"%s\"(expected: [%d], actual: [%d])", fullPath, item.Size, fileInfo.Size()))
		}
		files++
		total += item.Size
	}
	this.logger.Printf("[INFO] Listing integrity check passed: [%d files, %s in %s]", files, humanFileSize(float64(total)), localPath)
	return nil
}
