package sha256

import "bytes"

// HashWriter collects data through the io.Writer API and hashes it on
// Finalize. HashWriter.Write(slice).Finalize == Sum(slice)
type HashWriter struct {
	buf bytes.Buffer
}

// DoubleHashWriter collects data through the io.Writer API and double hashes
// it on Finalize. DoubleHashWriter.Write(slice).Finalize == DoubleSum(slice)
type DoubleHashWriter struct {
	buf bytes.Buffer
}

// NewHashWriter returns a new HashWriter
func NewHashWriter() *HashWriter {
	return &HashWriter{}
}

// Write will always return (len(p), nil)
func (h *HashWriter) Write(p []byte) (n int, err error) {
	return h.buf.Write(p)
}

// Finalize returns the resulting hash
func (h *HashWriter) Finalize() Digest {
	return Sum(h.buf.Bytes())
}

// NewDoubleHashWriter returns a new DoubleHashWriter
func NewDoubleHashWriter() *DoubleHashWriter {
	return &DoubleHashWriter{}
}

// Write will always return (len(p), nil)
func (h *DoubleHashWriter) Write(p []byte) (n int, err error) {
	return h.buf.Write(p)
}

// Finalize returns the resulting double hash
func (h *DoubleHashWriter) Finalize() Digest {
	return DoubleSum(h.buf.Bytes())
}
