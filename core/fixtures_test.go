package core

import (
	"bytes"
	"crypto/sha256"

	"github.com/klauspost/compress/zip"

	"github.com/smarty/happy/bundle"
)

type zipEntry struct {
	name    string
	content string
}

func buildZip(entries ...zipEntry) []byte {
	buffer := new(bytes.Buffer)
	writer := zip.NewWriter(buffer)
	for _, entry := range entries {
		target, err := writer.CreateHeader(&zip.FileHeader{Name: entry.name, Method: zip.Deflate})
		if err != nil {
			panic(err)
		}
		if _, err = target.Write([]byte(entry.content)); err != nil {
			panic(err)
		}
	}
	if err := writer.Close(); err != nil {
		panic(err)
	}
	return buffer.Bytes()
}

func buildApp(name string) *bundle.AppBundle {
	app, err := bundle.NewAppBundle(bundle.AppManifest{
		ManifestVersion: bundle.ManifestVersion,
		Name:            name,
		Roles:           []bundle.AppRoleManifest{{Name: "main", DNA: bundle.BundledLocation("main.dna")}},
	}, map[string][]byte{"main.dna": []byte("dna for " + name)})
	if err != nil {
		panic(err)
	}
	return app
}

func encodeApp(name string) []byte {
	raw, err := buildApp(name).Encode()
	if err != nil {
		panic(err)
	}
	return raw
}

func encodeWebApp(name string, ui []byte) []byte {
	raw, err := bundle.NewCodec().WrapWebApp(name+"-web", buildApp(name), ui)
	if err != nil {
		panic(err)
	}
	return raw
}

func checksum(content string) []byte {
	sum := sha256.Sum256([]byte(content))
	return sum[:]
}
