package core

import (
	"hash"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/smarty/happy/contracts"
)

type installerFileSystem interface {
	contracts.FileOpener
	contracts.FileCreator
	contracts.FileWriter
	contracts.FileChecker
	contracts.DirectoryMaker
	contracts.Deleter
}

// PackageInstaller places a package on disk. Store addresses the bundle and
// UI tree by content digest; Install places a web-wrapped package under a
// caller supplied app id. Both decode the whole package before writing
// anything.
type PackageInstaller struct {
	fileSystem   installerFileSystem
	classifier   *BundleClassifier
	extractor    *ArchiveExtractor
	listingCheck *FileListingIntegrityChecker
	newHash      func() hash.Hash
	hasher       *ContentHasher
	newID        func() string
	logger       *log.Logger
}

func NewPackageInstaller(
	fileSystem installerFileSystem,
	decoder contracts.BundleDecoder,
	newHash func() hash.Hash,
	logger *log.Logger,
) *PackageInstaller {
	logger = orDefaultLogger(logger)
	return &PackageInstaller{
		fileSystem:   fileSystem,
		classifier:   NewBundleClassifier(decoder),
		extractor:    NewArchiveExtractor(fileSystem, newHash, logger),
		listingCheck: NewFileListingIntegrityChecker(fileSystem, logger),
		newHash:      newHash,
		hasher:       NewContentHasher(newHash),
		newID:        uuid.NewString,
		logger:       logger,
	}
}

func (this *PackageInstaller) Store(request contracts.StoreRequest) (result contracts.InstallationResult, err error) {
	started := time.Now()

	raw, packageDigest, err := this.readPackage(request.PackagePath)
	if err != nil {
		return result, err
	}
	classification, err := this.classifier.Classify(raw)
	if err != nil {
		return result, err
	}
	encoded, err := this.encode(classification.Bundle)
	if err != nil {
		return result, err
	}

	result.AppDigest = this.hasher.Digest(encoded)
	result.HappPath = filepath.Join(request.HappsDirectory, result.AppDigest+contracts.HappExtension)
	if err = validateRenderedPath(result.HappPath); err != nil {
		return contracts.InstallationResult{}, err
	}

	if classification.WebWrapped {
		result.UIDigest = this.hasher.Digest(classification.UIArchive)
		result.PackageDigest = packageDigest
		assets := filepath.Join(request.UIsDirectory, result.UIDigest, "assets")
		if err = this.unpackUI(classification.UIArchive, assets, request.VerifyContents); err != nil {
			return contracts.InstallationResult{}, err
		}
	}

	if err = this.persist(encoded, request.HappsDirectory, result.HappPath); err != nil {
		return contracts.InstallationResult{}, err
	}
	this.logger.Printf("[INFO] Stored [%s] at [%s] in %s", classification.Bundle.Name(), result.HappPath, time.Since(started).Round(time.Millisecond))
	return result, nil
}

func (this *PackageInstaller) Install(request contracts.InstallRequest) error {
	started := time.Now()

	if err := validateAppID(request.AppID); err != nil {
		return err
	}
	raw, _, err := this.readPackage(request.PackagePath)
	if err != nil {
		return err
	}
	classification, err := this.classifier.Classify(raw)
	if err != nil {
		return err
	}
	if !classification.WebWrapped {
		return contracts.NewDecodeError("install "+request.PackagePath, contracts.ErrNotWebWrapped)
	}
	encoded, err := this.encode(classification.Bundle)
	if err != nil {
		return err
	}

	if err = this.unpackUI(classification.UIArchive, request.UIDirectory, request.VerifyContents); err != nil {
		return err
	}
	happPath := filepath.Join(request.HappsDirectory, request.AppID+contracts.HappExtension)
	if err = this.persist(encoded, request.HappsDirectory, happPath); err != nil {
		return err
	}
	this.logger.Printf("[INFO] Installed [%s] as [%s] in %s", classification.Bundle.Name(), request.AppID, time.Since(started).Round(time.Millisecond))
	return nil
}

func (this *PackageInstaller) readPackage(path string) ([]byte, string, error) {
	source, err := this.fileSystem.Open(path)
	if err != nil {
		return nil, "", contracts.NewIOError("read package "+path, err)
	}
	defer func() { _ = source.Close() }()

	raw, digest, err := this.hasher.ReadAll(io.NewSectionReader(source, 0, source.Size()))
	if err != nil {
		return nil, "", contracts.NewIOError("read package "+path, err)
	}
	this.logger.Printf("[INFO] Read package [%s] (%s)", path, humanFileSize(float64(len(raw))))
	return raw, digest, nil
}

func (this *PackageInstaller) encode(bundle contracts.ApplicationBundle) ([]byte, error) {
	encoded, err := bundle.Encode()
	if err != nil {
		return nil, contracts.NewDecodeError("encode happ bundle "+bundle.Name(), err)
	}
	return encoded, nil
}

// unpackUI stages the UI archive under destination with a name unique to this
// call, extracts it beside the staging file, and removes the staging file
// whether or not the extraction succeeded.
func (this *PackageInstaller) unpackUI(archive []byte, destination string, verifyContents bool) (err error) {
	started := time.Now()

	if err = this.fileSystem.MkdirAll(destination); err != nil {
		return contracts.NewIOError("create ui directory "+destination, err)
	}
	staging := filepath.Join(destination, ".staging-"+this.newID()+".zip")
	if err = this.fileSystem.WriteFile(staging, archive); err != nil {
		return contracts.NewIOError("stage ui archive "+staging, err)
	}
	defer func() {
		if deleteErr := this.fileSystem.Delete(staging); deleteErr != nil && err == nil {
			err = contracts.NewIOError("remove staged ui archive "+staging, deleteErr)
		}
	}()

	source, err := this.fileSystem.Open(staging)
	if err != nil {
		return contracts.NewIOError("open staged ui archive "+staging, err)
	}
	listing, err := this.extractor.Extract(source, destination)
	_ = source.Close()
	if err != nil {
		return err
	}
	integrity := NewCompoundIntegrityCheck(
		this.listingCheck,
		NewFileContentIntegrityCheck(this.newHash, this.fileSystem, verifyContents),
	)
	if err = integrity.Verify(listing, destination); err != nil {
		return err
	}
	this.logger.Printf("[INFO] Extracted %d UI entries (%s archive) into [%s] in %s",
		len(listing), humanFileSize(float64(len(archive))), destination, time.Since(started).Round(time.Millisecond))
	return nil
}

func (this *PackageInstaller) persist(encoded []byte, directory, path string) error {
	if err := this.fileSystem.MkdirAll(directory); err != nil {
		return contracts.NewIOError("create happs directory "+directory, err)
	}
	if err := this.fileSystem.WriteFile(path, encoded); err != nil {
		return contracts.NewIOError("write happ file "+path, err)
	}
	this.logger.Printf("[INFO] Wrote [%s] (%s)", path, humanFileSize(float64(len(encoded))))
	return nil
}
