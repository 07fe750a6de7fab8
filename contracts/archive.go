package contracts

import "io"

// ArchiveSource is a random-access view over zip bytes, either a staged file
// on disk or an in-memory buffer.
type ArchiveSource interface {
	io.ReaderAt
	Size() int64
}

// ArchiveItem describes one entry written to disk by an extraction.
// Checksum is the digest of the bytes written for a file entry.
type ArchiveItem struct {
	Path      string
	Size      int64
	Checksum  []byte
	Directory bool
}

type IntegrityCheck interface {
	Verify(listing []ArchiveItem, localPath string) error
}

type DirectoryArchiver interface {
	ArchiveDirectory(directory string) ([]byte, error)
}
