package testfile

import (
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
)

// Largest part size accepted; upload services hand out part sizes in the MiB range
const MaxPartSize = 1 << 30

var ErrInvalidPartSize = errors.New("invalid part size")

// One piece of a chunked upload session, in the form the upload API expects
type Part struct {
	Offset       int64
	Length       int64
	ContentRange string // bytes <start>-<end>/<total>, end inclusive
	Digest       string // sha=<base64 sha1 of this part>
}

// Every part of a file plus the digest of the whole thing, for committing
type Manifest struct {
	Filename string
	Size     int64
	PartSize int64
	SHA1     string // base64 sha1 of the whole file
	Parts    []Part
}

// Base64 of the raw sha1, which is how the upload API wants digests
func Sha1Base64(data []byte) string {
	hash := sha1.Sum(data)
	return base64.StdEncoding.EncodeToString(hash[:])
}

// Split the first size bytes of r into partSize pieces, in ascending range
// order, digesting each piece and the whole stream. The last part is short
// when size isn't a multiple of partSize; an empty stream has no parts.
func PartManifest(r io.Reader, size int64, partSize int64) ([]Part, string, error) {
	if partSize <= 0 || partSize > MaxPartSize {
		return nil, "", fmt.Errorf("%w: %d", ErrInvalidPartSize, partSize)
	}
	if size < 0 {
		return nil, "", fmt.Errorf("negative size %d", size)
	}
	whole := sha1.New()
	buf := make([]byte, min(partSize, max(size, 1)))
	parts := make([]Part, 0, (size+partSize-1)/partSize)
	for offset := int64(0); offset < size; {
		length := min(partSize, size-offset)
		chunk := buf[:length]
		if _, err := io.ReadFull(r, chunk); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, "", fmt.Errorf("couldn't read part at %d: %w", offset, err)
		}
		whole.Write(chunk)
		parts = append(parts, Part{
			Offset:       offset,
			Length:       length,
			ContentRange: fmt.Sprintf("bytes %d-%d/%d", offset, offset+length-1, size),
			Digest:       "sha=" + Sha1Base64(chunk),
		})
		offset += length
	}
	return parts, base64.StdEncoding.EncodeToString(whole.Sum(nil)), nil
}

// Build the part manifest for a file on disk
func FilePartManifest(path string, partSize int64) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	parts, digest, err := PartManifest(file, info.Size(), partSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Manifest{
		Filename: path,
		Size:     info.Size(),
		PartSize: partSize,
		SHA1:     digest,
		Parts:    parts,
	}, nil
}
