package bundle

import "fmt"

// AppBundle is a decoded application bundle: the app manifest plus the DNA
// resources it ships with.
type AppBundle struct {
	manifest  AppManifest
	resources map[string][]byte
}

func NewAppBundle(manifest AppManifest, resources map[string][]byte) (*AppBundle, error) {
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	if resources == nil {
		resources = map[string][]byte{}
	}
	for _, role := range manifest.Roles {
		if role.DNA.Bundled == "" {
			continue
		}
		if _, err := resolve(resources, role.DNA); err != nil {
			return nil, fmt.Errorf("role [%s]: %w", role.Name, err)
		}
	}
	return &AppBundle{manifest: manifest, resources: resources}, nil
}

func (this *AppBundle) Name() string            { return this.manifest.Name }
func (this *AppBundle) Manifest() AppManifest   { return this.manifest }
func (this *AppBundle) ResourceNames() []string { return sortedKeys(this.resources) }

func (this *AppBundle) Resource(location Location) ([]byte, error) {
	return resolve(this.resources, location)
}

func (this *AppBundle) Encode() ([]byte, error) {
	return encodeFrame(this.manifest, this.resources)
}
