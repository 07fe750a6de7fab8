package core

import (
	"archive/zip"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/mholt/archiver"

	"github.com/smarty/happy/contracts"
)

var errUnexpectedHeader = errors.New("archive entry carries no zip header")

type extractionFileSystem interface {
	contracts.DirectoryMaker
	contracts.FileCreator
}

// ArchiveExtractor unpacks zip archives entry by entry, in archive order.
// Entries with unsafe names are skipped; every other failure stops the
// extraction and leaves whatever was already written in place. Each file is
// published whole, so extractions racing into the same destination only ever
// replace complete files with complete files.
type ArchiveExtractor struct {
	fileSystem       extractionFileSystem
	newHash          func() hash.Hash
	logger           *log.Logger
	progressInterval time.Duration
}

func NewArchiveExtractor(fileSystem extractionFileSystem, newHash func() hash.Hash, logger *log.Logger) *ArchiveExtractor {
	return &ArchiveExtractor{
		fileSystem:       fileSystem,
		newHash:          newHash,
		logger:           orDefaultLogger(logger),
		progressInterval: 2 * time.Second,
	}
}

func (this *ArchiveExtractor) Extract(archive contracts.ArchiveSource, destination string) (listing []contracts.ArchiveItem, err error) {
	reader := archiver.NewZip()
	if err = reader.Open(io.NewSectionReader(archive, 0, archive.Size()), archive.Size()); err != nil {
		return nil, contracts.NewExtractionError("open ui archive", err)
	}
	defer func() { _ = reader.Close() }()

	progress := newArchiveProgressCounter(this.progressInterval, func(written string) {
		this.logger.Printf("[INFO] Extracting into [%s]: %s written", destination, written)
	})
	defer func() { _ = progress.Close() }()

	positions := map[string]int{}
	for {
		entry, err := reader.Read()
		if err == io.EOF {
			return listing, nil
		}
		if err != nil {
			closeEntry(entry)
			return listing, contracts.NewExtractionError("read ui archive", err)
		}

		item, extracted, err := this.extractEntry(entry, destination, progress)
		if err != nil {
			return listing, err
		}
		if !extracted {
			continue
		}
		// A later entry for the same path overwrote the earlier one on disk.
		if position, found := positions[item.Path]; found {
			listing[position] = item
			continue
		}
		positions[item.Path] = len(listing)
		listing = append(listing, item)
	}
}

func (this *ArchiveExtractor) extractEntry(entry archiver.File, destination string, progress io.Writer) (item contracts.ArchiveItem, extracted bool, err error) {
	defer closeEntry(entry)

	header, ok := entry.Header.(zip.FileHeader)
	if !ok {
		return item, false, contracts.NewExtractionError("read ui archive", errUnexpectedHeader)
	}
	relative, ok := EnclosedName(header.Name)
	if !ok {
		this.logger.Printf("[WARN] Skipping archive entry with unsafe name: %q", header.Name)
		return item, false, nil
	}
	target := filepath.Join(destination, relative)

	if strings.HasSuffix(header.Name, "/") {
		if err = this.fileSystem.MkdirAll(target); err != nil {
			return item, false, contracts.NewIOError("create directory "+target, err)
		}
		return contracts.ArchiveItem{Path: relative, Directory: true}, true, nil
	}

	if err = this.fileSystem.MkdirAll(filepath.Dir(target)); err != nil {
		return item, false, contracts.NewIOError("create directory "+filepath.Dir(target), err)
	}
	writer, err := this.fileSystem.Create(target)
	if err != nil {
		return item, false, contracts.NewIOError("create file "+target, err)
	}
	checksum := this.newHash()
	written, err := io.Copy(io.MultiWriter(writer, progress, checksum), entry)
	if err != nil {
		_ = writer.Discard()
		return item, false, contracts.NewExtractionError(fmt.Sprintf("extract %q", header.Name), err)
	}
	if err = writer.Close(); err != nil {
		return item, false, contracts.NewIOError("close file "+target, err)
	}
	return contracts.ArchiveItem{Path: relative, Size: written, Checksum: checksum.Sum(nil)}, true, nil
}

func closeEntry(entry archiver.File) {
	if entry.ReadCloser != nil {
		_ = entry.Close()
	}
}

func orDefaultLogger(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.Default()
	}
	return logger
}
