package collections

import (
	"encoding/binary"
	"fmt"
)

const (
	wordSize  = 8
	minVecCap = 4
	vecAlign  = 8
)

// Vec is a growable array of uint64 stored in heap memory. It allocates
// nothing until the first Push and doubles its capacity when full.
type Vec struct {
	h    Heap
	ptr  uintptr
	data []byte
	n    int
	cap  int
}

// NewVec returns an empty vector backed by h.
func NewVec(h Heap) *Vec {
	return &Vec{h: h}
}

// Len returns the number of elements.
func (v *Vec) Len() int { return v.n }

// Cap returns the number of elements the current allocation holds.
func (v *Vec) Cap() int { return v.cap }

// Push appends x, reallocating if the vector is full.
func (v *Vec) Push(x uint64) {
	if v.n == v.cap {
		v.grow()
	}
	binary.LittleEndian.PutUint64(v.data[v.n*wordSize:], x)
	v.n++
}

// Get returns element i. It panics when i is out of range.
func (v *Vec) Get(i int) uint64 {
	if i < 0 || i >= v.n {
		panic(fmt.Sprintf("collections: index %d out of range [0:%d]", i, v.n))
	}
	return binary.LittleEndian.Uint64(v.data[i*wordSize:])
}

// Free releases the backing allocation and empties the vector.
func (v *Vec) Free() error {
	if v.cap == 0 {
		return nil
	}
	err := v.h.Deallocate(v.ptr, uintptr(v.cap*wordSize), vecAlign)
	v.ptr, v.data, v.n, v.cap = 0, nil, 0, 0
	return err
}

// grow moves the elements into an allocation twice as large.
func (v *Vec) grow() {
	newCap := max(minVecCap, v.cap*2)
	ptr, b := mustAllocate(v.h, uintptr(newCap*wordSize), vecAlign)
	copy(b, v.data[:v.n*wordSize])

	if v.cap > 0 {
		if err := v.h.Deallocate(v.ptr, uintptr(v.cap*wordSize), vecAlign); err != nil {
			panic(fmt.Sprintf("collections: release old vector storage: %v", err))
		}
	}
	v.ptr, v.data, v.cap = ptr, b, newCap
}
