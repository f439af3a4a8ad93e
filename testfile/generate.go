package testfile

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
)

var (
	ErrPreallocateUnsupported = errors.New("preallocation not supported")
	ErrMissingDirectory       = errors.New("output directory does not exist")
)

// Everything needed to produce one test file
type Options struct {
	Output      string // Destination; its directory must already exist
	Multiplier  int64  // How many chunks to write. Zero or less makes an empty file
	ChunkSize   int
	Fill        byte
	Preallocate bool // Reserve the final size up front (linux only, best effort)
	Digest      bool // Compute the md5 of everything written
}

// The options matching the classic generator: 1MiB chunks of 'A' to ./data/test.dat
func DefaultOptions() Options {
	return Options{
		Output:    DefaultOutput,
		ChunkSize: ChunkSize,
		Fill:      FillByte,
	}
}

// Total size the file will have once generated
func (o *Options) Length() int64 {
	if o.Multiplier <= 0 {
		return 0
	}
	return o.Multiplier * int64(o.ChunkSize)
}

func (o *Options) Validate() error {
	if o.Output == "" {
		return errors.New("no output file given")
	}
	if o.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", o.ChunkSize)
	}
	if o.Multiplier > math.MaxInt64/int64(o.ChunkSize) {
		return fmt.Errorf("%d chunks of %d bytes is too large", o.Multiplier, o.ChunkSize)
	}
	return nil
}

// Failure to open (create or truncate) the output file
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("couldn't open %s: %s", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Information about a finished file
type Result struct {
	Filename   string
	Multiplier int64
	ChunkSize  int
	Length     int64
	MD5        string `json:",omitempty"`
}

// Check that the directory the output goes into exists. This never creates
// anything; it only lets callers report the precondition before opening.
func RequireDir(output string) error {
	dir := filepath.Dir(output)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMissingDirectory, dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingDirectory, dir)
	}
	return nil
}

// Generate the test file described by opts. The file is always truncated, so
// the content only ever depends on the options and not on what was there.
func Generate(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	chunk := MakeFill(opts.ChunkSize, opts.Fill)

	file, err := os.OpenFile(opts.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return nil, &OpenError{Path: opts.Output, Err: err}
	}
	defer file.Close()

	length := opts.Length()
	if opts.Preallocate {
		err = preallocate(file, length)
		if errors.Is(err, ErrPreallocateUnsupported) {
			log.Printf("Preallocation unavailable for %s, writing without it\n", opts.Output)
		} else if err != nil {
			return nil, err
		}
	}

	var w io.Writer = file
	var digest hash.Hash
	if opts.Digest {
		digest = md5.New()
		w = io.MultiWriter(file, digest)
	}

	log.Printf("Writing %d chunks of %d bytes to %s\n", max(opts.Multiplier, 0), opts.ChunkSize, opts.Output)
	written, err := WriteChunks(w, chunk, opts.Multiplier)
	if err != nil {
		return nil, err
	}
	if err = file.Close(); err != nil {
		return nil, &WriteError{Chunk: max(opts.Multiplier, 0), Written: written, Err: err}
	}
	log.Printf("Wrote %d bytes to %s\n", written, opts.Output)

	result := &Result{
		Filename:   opts.Output,
		Multiplier: opts.Multiplier,
		ChunkSize:  opts.ChunkSize,
		Length:     written,
	}
	if digest != nil {
		result.MD5 = hex.EncodeToString(digest.Sum(nil))
	}
	return result, nil
}
