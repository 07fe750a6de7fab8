package bundle

import (
	"errors"
	"fmt"
)

const ManifestVersion = "1"

var (
	ErrInvalidManifest    = errors.New("invalid manifest")
	ErrUnresolvedLocation = errors.New("unresolved location")
)

// Location points at the bytes of a bundle component. Exactly one of the
// fields is set; only Bundled locations can be resolved from a frame.
type Location struct {
	Bundled string `msgpack:"bundled,omitempty"`
	Path    string `msgpack:"path,omitempty"`
	URL     string `msgpack:"url,omitempty"`
}

func BundledLocation(resource string) Location {
	return Location{Bundled: resource}
}

func (this Location) Validate() error {
	count := 0
	for _, value := range []string{this.Bundled, this.Path, this.URL} {
		if value != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("%w: location must set exactly one of bundled, path or url", ErrInvalidManifest)
	}
	return nil
}

type AppManifest struct {
	ManifestVersion string            `msgpack:"manifest_version"`
	Name            string            `msgpack:"name"`
	Description     string            `msgpack:"description"`
	Roles           []AppRoleManifest `msgpack:"roles"`
}

type AppRoleManifest struct {
	Name         string        `msgpack:"name"`
	Provisioning *Provisioning `msgpack:"provisioning,omitempty"`
	DNA          Location      `msgpack:"dna"`
}

type Provisioning struct {
	Strategy string `msgpack:"strategy"`
	Deferred bool   `msgpack:"deferred"`
}

func (this AppManifest) Validate() error {
	if err := validateHeader(this.ManifestVersion, this.Name); err != nil {
		return err
	}
	names := make(map[string]struct{}, len(this.Roles))
	for _, role := range this.Roles {
		if role.Name == "" {
			return fmt.Errorf("%w: role name is required", ErrInvalidManifest)
		}
		if _, found := names[role.Name]; found {
			return fmt.Errorf("%w: duplicate role name [%s]", ErrInvalidManifest, role.Name)
		}
		names[role.Name] = struct{}{}

		if err := role.DNA.Validate(); err != nil {
			return fmt.Errorf("role [%s]: %w", role.Name, err)
		}
	}
	return nil
}

type WebAppManifest struct {
	ManifestVersion string   `msgpack:"manifest_version"`
	Name            string   `msgpack:"name"`
	UI              Location `msgpack:"ui"`
	HappManifest    Location `msgpack:"happ_manifest"`
}

func (this WebAppManifest) Validate() error {
	if err := validateHeader(this.ManifestVersion, this.Name); err != nil {
		return err
	}
	if err := this.UI.Validate(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if err := this.HappManifest.Validate(); err != nil {
		return fmt.Errorf("happ_manifest: %w", err)
	}
	return nil
}

func validateHeader(version, name string) error {
	if version != ManifestVersion {
		return fmt.Errorf("%w: unsupported manifest_version [%s]", ErrInvalidManifest, version)
	}
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidManifest)
	}
	return nil
}
