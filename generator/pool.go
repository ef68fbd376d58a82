package generator

import (
	"bytes"
	"sync"
)

// Tiered buffer sizes, chosen by the number of entries (fields or methods)
// a file will hold.
const (
	smallBufferSize  = 8 * 1024  // 8KB for <10 entries
	mediumBufferSize = 32 * 1024 // 32KB for 10-50 entries
	largeBufferSize  = 64 * 1024 // 64KB for 50+ entries
)

var smallBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, smallBufferSize))
	},
}

var mediumBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, mediumBufferSize))
	},
}

var largeBufferPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, largeBufferSize))
	},
}

// getFileBuffer returns a buffer sized for the entry count.
func getFileBuffer(entries int) *bytes.Buffer {
	var buf *bytes.Buffer
	switch {
	case entries < 10:
		buf = smallBufferPool.Get().(*bytes.Buffer)
	case entries < 50:
		buf = mediumBufferPool.Get().(*bytes.Buffer)
	default:
		buf = largeBufferPool.Get().(*bytes.Buffer)
	}
	buf.Reset()
	return buf
}

// putFileBuffer returns a buffer to the appropriate pool.
func putFileBuffer(buf *bytes.Buffer, entries int) {
	if buf == nil {
		return
	}
	// Don't pool oversized buffers
	if buf.Cap() > 1<<20 {
		return
	}
	switch {
	case entries < 10:
		smallBufferPool.Put(buf)
	case entries < 50:
		mediumBufferPool.Put(buf)
	default:
		largeBufferPool.Put(buf)
	}
}

// detach copies the buffer contents so the buffer can go back to its pool.
func detach(buf *bytes.Buffer) []byte {
	return bytes.Clone(buf.Bytes())
}
