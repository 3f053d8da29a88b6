package handler

import (
	"bytes"
	"sync"
)

const responseBufferSize = 512

// responseBuffers recycles encode buffers so steady-state request handling
// does not allocate a fresh buffer per response.
var responseBuffers = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, responseBufferSize))
	},
}

func acquireBuffer() *bytes.Buffer {
	return responseBuffers.Get().(*bytes.Buffer)
}

// releaseBuffer resets the buffer before handing it back to the pool
func releaseBuffer(buf *bytes.Buffer) {
	buf.Reset()
	responseBuffers.Put(buf)
}
