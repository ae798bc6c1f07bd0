package benchmark

import (
	"math/rand"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyz"

// PayloadTemplate is the read-only buffer every message of a scenario copies
// its payload from.
type PayloadTemplate struct {
	buf []byte
}

// NewPayloadTemplate fills a template of the given size with random
// lowercase letters.
func NewPayloadTemplate(size int) PayloadTemplate {
	if size <= 0 {
		return PayloadTemplate{buf: []byte{}}
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = charset[rng.Intn(len(charset))]
	}
	return PayloadTemplate{buf: buf}
}

// Clone returns a fresh copy of the template.
func (pt PayloadTemplate) Clone() []byte {
	buf := make([]byte, len(pt.buf))
	copy(buf, pt.buf)
	return buf
}

func (pt PayloadTemplate) Size() int {
	return len(pt.buf)
}
