package testfile

import (
	"fmt"
	"io"
)

// A writer wrapper which remembers the first error. Once an error is present
// every further write is skipped, so a long sequence of writes only needs to
// be checked once at the end.
type WriteErrorPass struct {
	w       io.Writer
	err     error
	written int64
}

func NewWriteErrorPass(w io.Writer) *WriteErrorPass {
	return &WriteErrorPass{w: w}
}

// Write the entire buffer, looping over short writes (blocking). A writer
// that returns no error but also makes no progress is an io.ErrShortWrite
func (wep *WriteErrorPass) Write(b []byte) (int, error) {
	if wep.err != nil {
		return 0, wep.err
	}
	total := 0
	slice := b
	for len(slice) > 0 {
		count, err := wep.w.Write(slice)
		total += count
		wep.written += int64(count)
		if err != nil {
			wep.err = err
			return total, err
		}
		if count == 0 {
			wep.err = io.ErrShortWrite
			return total, wep.err
		}
		slice = slice[count:]
	}
	return total, nil
}

func (wep *WriteErrorPass) WritePass(b []byte) int {
	val, _ := wep.Write(b)
	return val
}

func (wep *WriteErrorPass) IsPass() error {
	return wep.err
}

// Total bytes handed to the underlying writer, including partial writes
func (wep *WriteErrorPass) Written() int64 {
	return wep.written
}

// A failed write during chunk output
type WriteError struct {
	Chunk   int64 // Index of the chunk being written
	Written int64 // Bytes successfully written before the failure
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write failed on chunk %d after %d bytes: %s", e.Chunk, e.Written, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write the same chunk count times. A count of zero or less writes nothing.
// Returns the total bytes written; the first failure stops everything and is
// returned as a *WriteError.
func WriteChunks(w io.Writer, chunk []byte, count int64) (int64, error) {
	wep := NewWriteErrorPass(w)
	for i := int64(0); i < count; i++ {
		wep.WritePass(chunk)
		if err := wep.IsPass(); err != nil {
			return wep.Written(), &WriteError{Chunk: i, Written: wep.Written(), Err: err}
		}
	}
	return wep.Written(), nil
}
