package bundle

import (
	"fmt"

	"github.com/smarty/happy/contracts"
)

const UIResourceName = "ui.zip"

// WebAppBundle wraps an application bundle together with a zipped UI.
type WebAppBundle struct {
	manifest  WebAppManifest
	resources map[string][]byte
	codec     *Codec
}

// NewWebAppBundle stores the encoded happ and the UI zip as bundled resources
// of a new web-app bundle.
func NewWebAppBundle(name string, happ contracts.ApplicationBundle, ui []byte) (*WebAppBundle, error) {
	encoded, err := happ.Encode()
	if err != nil {
		return nil, err
	}
	happResource := happ.Name() + contracts.HappExtension
	manifest := WebAppManifest{
		ManifestVersion: ManifestVersion,
		Name:            name,
		UI:              BundledLocation(UIResourceName),
		HappManifest:    BundledLocation(happResource),
	}
	if err = manifest.Validate(); err != nil {
		return nil, err
	}
	resources := map[string][]byte{
		UIResourceName: ui,
		happResource:   encoded,
	}
	return &WebAppBundle{manifest: manifest, resources: resources, codec: NewCodec()}, nil
}

func (this *WebAppBundle) Name() string             { return this.manifest.Name }
func (this *WebAppBundle) Manifest() WebAppManifest { return this.manifest }

func (this *WebAppBundle) UIArchive() ([]byte, error) {
	content, err := resolve(this.resources, this.manifest.UI)
	if err != nil {
		return nil, fmt.Errorf("ui: %w", err)
	}
	return content, nil
}

func (this *WebAppBundle) ApplicationBundle() (contracts.ApplicationBundle, error) {
	content, err := resolve(this.resources, this.manifest.HappManifest)
	if err != nil {
		return nil, fmt.Errorf("happ_manifest: %w", err)
	}
	return this.codec.DecodeApp(content)
}

func (this *WebAppBundle) Encode() ([]byte, error) {
	return encodeFrame(this.manifest, this.resources)
}
