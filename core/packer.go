package core

import (
	"errors"
	"hash"
	"log"
	"path/filepath"

	"github.com/smarty/happy/contracts"
)

var errMissingOutput = errors.New("output path is required")

type packerFileSystem interface {
	contracts.FileReader
	contracts.FileWriter
	contracts.DirectoryMaker
}

// WebAppPacker builds a web-wrapped package from a .happ file and a UI
// directory.
type WebAppPacker struct {
	fileSystem packerFileSystem
	decoder    contracts.BundleDecoder
	wrapper    contracts.WebAppWrapper
	archiver   contracts.DirectoryArchiver
	hasher     *ContentHasher
	logger     *log.Logger
}

func NewWebAppPacker(
	fileSystem packerFileSystem,
	decoder contracts.BundleDecoder,
	wrapper contracts.WebAppWrapper,
	archiver contracts.DirectoryArchiver,
	newHash func() hash.Hash,
	logger *log.Logger,
) *WebAppPacker {
	return &WebAppPacker{
		fileSystem: fileSystem,
		decoder:    decoder,
		wrapper:    wrapper,
		archiver:   archiver,
		hasher:     NewContentHasher(newHash),
		logger:     orDefaultLogger(logger),
	}
}

// Pack writes the package to request.OutputPath and returns the digest of
// the written bytes. The web-app name defaults to the name of the app.
func (this *WebAppPacker) Pack(request contracts.PackRequest) (string, error) {
	if request.OutputPath == "" {
		return "", contracts.NewAddressingError("pack "+request.HappPath, errMissingOutput)
	}
	raw, err := this.fileSystem.ReadFile(request.HappPath)
	if err != nil {
		return "", contracts.NewIOError("read happ file "+request.HappPath, err)
	}
	app, err := this.decoder.DecodeApp(raw)
	if err != nil {
		return "", contracts.NewDecodeError("decode happ file "+request.HappPath, err)
	}
	ui, err := this.archiver.ArchiveDirectory(request.UIDirectory)
	if err != nil {
		return "", contracts.NewIOError("archive ui directory "+request.UIDirectory, err)
	}

	name := request.Name
	if name == "" {
		name = app.Name()
	}
	wrapped, err := this.wrapper.WrapWebApp(name, app, ui)
	if err != nil {
		return "", contracts.NewDecodeError("encode web app "+name, err)
	}

	if err = this.fileSystem.MkdirAll(filepath.Dir(request.OutputPath)); err != nil {
		return "", contracts.NewIOError("create output directory", err)
	}
	if err = this.fileSystem.WriteFile(request.OutputPath, wrapped); err != nil {
		return "", contracts.NewIOError("write "+request.OutputPath, err)
	}
	this.logger.Printf("[INFO] Packed [%s] into [%s] (%s, ui %s)",
		name, request.OutputPath, humanFileSize(float64(len(wrapped))), humanFileSize(float64(len(ui))))
	return this.hasher.Digest(wrapped), nil
}
