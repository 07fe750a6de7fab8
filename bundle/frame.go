package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"
)

var ErrMalformedFrame = errors.New("malformed bundle frame")

// frame is the on-disk shape of every bundle: a manifest plus named resource
// blobs, MessagePack encoded and gzip compressed.
type frame[M any] struct {
	Manifest  M                 `msgpack:"manifest"`
	Resources map[string][]byte `msgpack:"resources"`
}

func encodeFrame[M any](manifest M, resources map[string][]byte) ([]byte, error) {
	buffer := new(bytes.Buffer)
	writer, err := gzip.NewWriterLevel(buffer, gzip.BestCompression)
	if err != nil {
		return nil, err
	}

	encoder := msgpack.NewEncoder(writer).SetSortMapKeys(true)
	if err = encoder.Encode(frame[M]{Manifest: manifest, Resources: resources}); err != nil {
		return nil, err
	}
	if err = writer.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func decodeFrame[M any](raw []byte) (frame[M], error) {
	var decoded frame[M]

	reader, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return decoded, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	defer func() { _ = reader.Close() }()

	decoder := msgpack.NewDecoder(reader)
	decoder.DisallowUnknownFields(true)
	if err = decoder.Decode(&decoded); err != nil {
		return decoded, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if _, err = io.Copy(io.Discard, reader); err != nil {
		return decoded, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return decoded, nil
}

func resolve(resources map[string][]byte, location Location) ([]byte, error) {
	if location.Bundled == "" {
		return nil, fmt.Errorf("%w: only bundled resources can be resolved", ErrUnresolvedLocation)
	}
	content, found := resources[location.Bundled]
	if !found {
		return nil, fmt.Errorf("%w: resource [%s] is not present in the bundle", ErrUnresolvedLocation, location.Bundled)
	}
	return content, nil
}
