package memhog

import (
	"fmt"
	"math"
	"os"
	"runtime"
)

// Block is the memory block of a run: one contiguous buffer owned
// by the Hog from allocation until Release.
type Block struct {
	buf []byte
}

// allocate makes a contiguous buffer of size bytes and touches every page of
// it, so the block is resident rather than only reserved. Sizes the runtime
// refuses are returned as *AllocError.
func allocate(size int64) (b *Block, err error) {
	if size <= 0 || size > math.MaxInt {
		return nil, &AllocError{Size: size, Available: -1, Cause: fmt.Errorf("size out of range")}
	}

	defer func() {
		if r := recover(); r != nil {
			rerr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}
			b, err = nil, &AllocError{Size: size, Available: -1, Cause: rerr}
		}
	}()

	buf := make([]byte, int(size))
	touch(buf, os.Getpagesize())
	return &Block{buf: buf}, nil
}

func touch(buf []byte, pageSize int) {
	if pageSize <= 0 {
		pageSize = 4096
	}
	for i := 0; i < len(buf); i += pageSize {
		buf[i] = 1
	}
}

// Len returns the size of the block in bytes, 0 once released.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.buf)
}

// Released reports whether the owning reference was dropped.
func (b *Block) Released() bool {
	return b == nil || b.buf == nil
}

// Release drops the owning reference so the buffer can be reclaimed.
// It reports whether this call released it.
func (b *Block) Release() bool {
	if b.Released() {
		return false
	}
	b.buf = nil
	return true
}
