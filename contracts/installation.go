package contracts

import "strings"

// DigestDelimiter separates the fields of a rendered InstallationResult. It
// never occurs in a hex digest and is rejected in persisted paths.
const DigestDelimiter = "$"

const (
	HappExtension    = ".happ"
	WebHappExtension = ".webhapp"
)

// StoreRequest asks for a content-addressed installation: the bundle is named
// by its digest and the UI lands in a digest-named directory.
type StoreRequest struct {
	PackagePath    string
	UIsDirectory   string
	HappsDirectory string
	VerifyContents bool
}

// InstallRequest asks for a fixed-identity installation of a web-wrapped
// package under a caller supplied application id.
type InstallRequest struct {
	PackagePath    string
	AppID          string
	UIDirectory    string
	HappsDirectory string
	VerifyContents bool
}

type PackRequest struct {
	HappPath    string
	UIDirectory string
	OutputPath  string
	Name        string
}

type InstallationResult struct {
	HappPath      string
	AppDigest     string
	UIDigest      string
	PackageDigest string
}

func (this InstallationResult) WebWrapped() bool {
	return this.UIDigest != ""
}

// String renders "<happ_path>$<app_digest>[$<ui_digest>$<package_digest>]".
func (this InstallationResult) String() string {
	fields := []string{this.HappPath, this.AppDigest}
	if this.WebWrapped() {
		fields = append(fields, this.UIDigest, this.PackageDigest)
	}
	return strings.Join(fields, DigestDelimiter)
}
