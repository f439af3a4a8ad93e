package testfile

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
)

const (
	ChunkSize     = 1024 * 1024
	FillByte      = 0x41 // 'A'
	DefaultOutput = "./data/test.dat"
)

// Produce a buffer of the given length where every byte is value. This is
// the unit written over and over to build a test file.
func MakeFill(length int, value byte) []byte {
	if length <= 0 {
		return []byte{}
	}
	return bytes.Repeat([]byte{value}, length)
}

// Produce an md5 string from given data (a simple shortcut)
func Md5String(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}
