package bundle

import (
	"sort"

	"github.com/smarty/happy/contracts"
)

// Codec decodes raw bundle frames. Unknown manifest fields are rejected, so
// an app frame never decodes as a web-app frame and vice versa.
type Codec struct{}

func NewCodec() *Codec {
	return &Codec{}
}

func (this *Codec) DecodeWebApp(raw []byte) (contracts.WebAppBundle, error) {
	decoded, err := decodeFrame[WebAppManifest](raw)
	if err != nil {
		return nil, err
	}
	if err = decoded.Manifest.Validate(); err != nil {
		return nil, err
	}
	if decoded.Resources == nil {
		decoded.Resources = map[string][]byte{}
	}
	return &WebAppBundle{manifest: decoded.Manifest, resources: decoded.Resources, codec: this}, nil
}

func (this *Codec) DecodeApp(raw []byte) (contracts.ApplicationBundle, error) {
	decoded, err := this.decodeApp(raw)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

func (this *Codec) decodeApp(raw []byte) (*AppBundle, error) {
	decoded, err := decodeFrame[AppManifest](raw)
	if err != nil {
		return nil, err
	}
	return NewAppBundle(decoded.Manifest, decoded.Resources)
}

func (this *Codec) WrapWebApp(name string, app contracts.ApplicationBundle, ui []byte) ([]byte, error) {
	wrapped, err := NewWebAppBundle(name, app, ui)
	if err != nil {
		return nil, err
	}
	return wrapped.Encode()
}

func sortedKeys(resources map[string][]byte) (keys []string) {
	for key := range resources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
