package sha256

import (
	"testing"
)

func TestHashWriters(t *testing.T) {
	tests := [][]string{
		{},
		{"abc"},
		{"he", "llo"},
		{"a", "", "bc"},
	}
	for _, parts := range tests {
		var joined []byte
		hashWriter := NewHashWriter()
		doubleHashWriter := NewDoubleHashWriter()
		for _, part := range parts {
			joined = append(joined, part...)
			n, err := hashWriter.Write([]byte(part))
			if err != nil || n != len(part) {
				t.Fatalf("HashWriter.Write(%q): got (%d, %v)", part, n, err)
			}
			n, err = doubleHashWriter.Write([]byte(part))
			if err != nil || n != len(part) {
				t.Fatalf("DoubleHashWriter.Write(%q): got (%d, %v)", part, n, err)
			}
		}
		if got, want := hashWriter.Finalize(), Sum(joined); got != want {
			t.Errorf("%q: HashWriter got %s, want %s", parts, got, want)
		}
		if got, want := doubleHashWriter.Finalize(), DoubleSum(joined); got != want {
			t.Errorf("%q: DoubleHashWriter got %s, want %s", parts, got, want)
		}
	}
}
