//go:build !linux

package testfile

import "os"

func preallocate(file *os.File, size int64) error {
	return ErrPreallocateUnsupported
}
