package core

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/smarty/happy/contracts"
)

var (
	errInvalidUTF8       = errors.New("path is not valid UTF-8")
	errReservedDelimiter = errors.New("contains the reserved delimiter " + contracts.DigestDelimiter)
	errEmptyAppID        = errors.New("app id is required")
	errInvalidAppID      = errors.New("app id must be a single file name")
)

// validateRenderedPath rejects persisted paths that cannot be rendered into
// an installation result without ambiguity.
func validateRenderedPath(path string) error {
	if !utf8.ValidString(path) {
		return contracts.NewAddressingError("render "+path, errInvalidUTF8)
	}
	if strings.Contains(path, contracts.DigestDelimiter) {
		return contracts.NewAddressingError("render "+path, errReservedDelimiter)
	}
	return nil
}

func validateAppID(id string) error {
	switch {
	case id == "":
		return contracts.NewAddressingError("validate app id", errEmptyAppID)
	case id == "." || id == "..":
		return contracts.NewAddressingError("validate app id "+id, errInvalidAppID)
	case strings.ContainsAny(id, "/\\\x00") || strings.ContainsRune(id, filepath.Separator):
		return contracts.NewAddressingError("validate app id "+id, errInvalidAppID)
	case strings.Contains(id, contracts.DigestDelimiter):
		return contracts.NewAddressingError("validate app id "+id, errReservedDelimiter)
	}
	return nil
}
