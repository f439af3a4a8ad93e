//go:build linux

package testfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Reserve disk blocks for the file without changing its apparent size
func preallocate(file *os.File, size int64) error {
	if size <= 0 {
		return nil
	}
	err := unix.Fallocate(int(file.Fd()), unix.FALLOC_FL_KEEP_SIZE, 0, size)
	if errors.Is(err, unix.EOPNOTSUPP) || errors.Is(err, unix.ENOSYS) || errors.Is(err, unix.EINVAL) {
		return ErrPreallocateUnsupported
	}
	if err != nil {
		return fmt.Errorf("error allocating file: %w", err)
	}
	return nil
}
