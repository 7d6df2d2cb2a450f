package format

import "encoding/binary"

// Little-endian accessors for the 64-bit words the allocators keep inside
// free memory. Every intrusive record (free node size, next link) goes
// through these helpers; nothing else reinterprets heap bytes.

// PutWord writes v at b[off:off+8].
func PutWord(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadWord reads the word at b[off:off+8].
func ReadWord(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}
