package core

import (
	"encoding/hex"
	"hash"
	"io"
)

// ContentHasher derives the lowercase hex digests used to address installed
// bundles and UI trees.
type ContentHasher struct {
	newHash func() hash.Hash
}

func NewContentHasher(newHash func() hash.Hash) *ContentHasher {
	return &ContentHasher{newHash: newHash}
}

func (this *ContentHasher) Digest(raw []byte) string {
	target := this.newHash()
	_, _ = target.Write(raw)
	return hex.EncodeToString(target.Sum(nil))
}

// ReadAll loads source completely and digests the bytes in the same pass.
func (this *ContentHasher) ReadAll(source io.Reader) (raw []byte, digest string, err error) {
	reader := NewHashReader(source, this.newHash())
	raw, err = io.ReadAll(reader)
	if err != nil {
		return nil, "", err
	}
	return raw, hex.EncodeToString(reader.Sum(nil)), nil
}
