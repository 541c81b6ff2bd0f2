package binaryserializer

import (
	"bytes"
	"io"
	"reflect"
	"testing"

	"github.com/pkg/errors"
)

func TestUint32RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	err := PutUint32(&buf, 0x1d00ffff)
	if err != nil {
		t.Fatalf("PutUint32: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), []byte{0xff, 0xff, 0x00, 0x1d}) {
		t.Errorf("PutUint32: got %x, want ffff001d", buf.Bytes())
	}
	val, err := Uint32(&buf)
	if err != nil {
		t.Fatalf("Uint32: %v", err)
	}
	if val != 0x1d00ffff {
		t.Errorf("Uint32: got %08x, want 1d00ffff", val)
	}

	_, err = Uint32(bytes.NewReader([]byte{1, 2}))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Uint32 on short input: got %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestWords(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x3b, 0xa3, 0xed, 0xfd}
	words, err := Words(data)
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	want := []uint32{1, 0xfdeda33b}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words: got %x, want %x", words, want)
	}

	back := make([]byte, len(data))
	PutWords(back, words)
	if !bytes.Equal(back, data) {
		t.Errorf("PutWords: got %x, want %x", back, data)
	}

	_, err = Words([]byte{1, 2, 3})
	if err == nil {
		t.Errorf("Words: expected an error for a length that is not a multiple of 4")
	}
}
