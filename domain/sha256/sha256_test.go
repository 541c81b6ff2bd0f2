package sha256

import (
	"bytes"
	stdsha256 "crypto/sha256"
	"strings"
	"testing"
)

// TestSum ensures Sum produces the published FIPS 180-4 and reference test
// vectors.
func TestSum(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "empty",
			in:   "",
			want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name: "abc",
			in:   "abc",
			want: "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name: "hello",
			in:   "hello",
			want: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		},
		{
			name: "448 bits",
			in:   "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			want: "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
		},
		{
			name: "one million a",
			in:   strings.Repeat("a", 1000000),
			want: "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0",
		},
	}

	for _, test := range tests {
		digest := Sum([]byte(test.in))
		if digest.String() != test.want {
			t.Errorf("Sum(%s): got %s, want %s", test.name, digest, test.want)
		}
	}
}

func TestDoubleSum(t *testing.T) {
	const want = "9595c9df90075148eb06860365df33584b75bff782a510c6cd4883a419833d50"
	digest := DoubleSum([]byte("hello"))
	if digest.String() != want {
		t.Errorf("DoubleSum(hello): got %s, want %s", digest, want)
	}

	for _, in := range [][]byte{nil, []byte("abc"), bytes.Repeat([]byte{0xff}, 200)} {
		first := Sum(in)
		composed := Sum(first[:])
		if DoubleSum(in) != composed {
			t.Errorf("DoubleSum(%x) differs from Sum(Sum(x))", in)
		}
	}
}

// TestSumMatchesStandardLibrary checks every input length up to a few blocks,
// which covers all the padding boundaries.
func TestSumMatchesStandardLibrary(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}
	for length := 0; length <= len(data); length++ {
		in := data[:length]
		got := Sum(in)
		want := stdsha256.Sum256(in)
		if got != Digest(want) {
			t.Errorf("Sum of %d bytes: got %s, want %x", length, got, want)
		}
	}
}

func TestSumIsDeterministic(t *testing.T) {
	in := []byte("determinism")
	first := Sum(in)
	for i := 0; i < 10; i++ {
		if Sum(in) != first {
			t.Fatalf("Sum returned a different digest on call %d", i)
		}
	}
	if !bytes.Equal(in, []byte("determinism")) {
		t.Errorf("Sum modified its input")
	}
}

func TestDigestStrings(t *testing.T) {
	const natural = "6fe28c0ab6f1b372c1a6a246ae63f74f931e8365e15a089c68d6190000000000"
	const display = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"

	digest, err := NewDigestFromString(natural)
	if err != nil {
		t.Fatalf("NewDigestFromString: %v", err)
	}
	if digest.String() != natural {
		t.Errorf("String: got %s, want %s", digest, natural)
	}
	if digest.DisplayString() != display {
		t.Errorf("DisplayString: got %s, want %s", digest.DisplayString(), display)
	}

	fromDisplay, err := NewDigestFromDisplayString(display)
	if err != nil {
		t.Fatalf("NewDigestFromDisplayString: %v", err)
	}
	if fromDisplay != digest {
		t.Errorf("NewDigestFromDisplayString: got %s, want %s", fromDisplay, digest)
	}
	if digest.Reversed().Reversed() != digest {
		t.Errorf("Reversed is not an involution")
	}

	invalid := []string{"", "00", natural + "00", strings.Repeat("zz", DigestSize)}
	for _, s := range invalid {
		_, err := NewDigestFromString(s)
		if err == nil {
			t.Errorf("NewDigestFromString(%q): expected an error", s)
		}
	}
}
