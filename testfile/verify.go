package testfile

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// A byte in the file which isn't the fill value
type MismatchError struct {
	Offset int64
	Found  byte
	Expect byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("byte at offset %d is 0x%02X, expected 0x%02X", e.Offset, e.Found, e.Expect)
}

// A file with the wrong total length
type LengthError struct {
	Length int64
	Expect int64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("file is %d bytes, expected %d", e.Length, e.Expect)
}

type Verification struct {
	Filename string
	Length   int64
	MD5      string
}

// Check that every byte in the stream equals fill, hashing as we go. Returns
// the number of bytes read before stopping.
func VerifyReader(r io.Reader, fill byte) (int64, string, error) {
	digest := md5.New()
	buf := make([]byte, ChunkSize)
	var offset int64
	for {
		count, err := r.Read(buf)
		for i, b := range buf[:count] {
			if b != fill {
				return offset + int64(i), "", &MismatchError{Offset: offset + int64(i), Found: b, Expect: fill}
			}
		}
		digest.Write(buf[:count])
		offset += int64(count)
		if err == io.EOF {
			break
		}
		if err != nil {
			return offset, "", err
		}
	}
	return offset, hex.EncodeToString(digest.Sum(nil)), nil
}

// Verify a generated file. A negative expected length skips the length check.
func Verify(path string, fill byte, expected int64) (*Verification, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	// Cheap check first so a wrong size doesn't read the whole file
	if expected >= 0 {
		info, err := file.Stat()
		if err != nil {
			return nil, err
		}
		if info.Size() != expected {
			return nil, &LengthError{Length: info.Size(), Expect: expected}
		}
	}
	length, sum, err := VerifyReader(file, fill)
	if err != nil {
		return nil, err
	}
	if expected >= 0 && length != expected {
		return nil, &LengthError{Length: length, Expect: expected}
	}
	return &Verification{Filename: path, Length: length, MD5: sum}, nil
}
