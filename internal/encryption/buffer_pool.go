package encryption

import (
	"sync"
)

const defaultBufferSize = 32 * 1024

// bufferPool holds read buffers for streaming decryption of fragment files.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, defaultBufferSize)
	},
}
