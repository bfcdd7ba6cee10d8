package binframe

// buffer is the parser's backing byte region. It either owns its bytes
// outright or borrows a caller-provided slice; reads never distinguish the
// two, the tag only records who is responsible for the memory. Borrowed
// buffers must not be mutated by the caller while a Parser holds them.
type buffer struct {
	data  []byte
	owned bool
}

func borrowedBuffer(data []byte) buffer {
	return buffer{data: data}
}

// ownedBuffer wraps data that already belongs to the buffer (for example a
// freshly allocated copy for an isolated sub-region).
func ownedBuffer(data []byte) buffer {
	return buffer{data: data, owned: true}
}

func (b buffer) bytes() []byte { return b.data }

func (b buffer) len() int { return len(b.data) }
