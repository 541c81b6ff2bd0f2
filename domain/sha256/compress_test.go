package sha256

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func abcBlock() *Block {
	blocks := Pad([]byte("abc"))
	return &blocks[0]
}

func TestNewMessageSchedule(t *testing.T) {
	w := NewMessageSchedule(abcBlock())
	if w[0] != 0x61626380 {
		t.Errorf("w[0]: got %08x, want 61626380", w[0])
	}
	for i := 1; i < 15; i++ {
		if w[i] != 0 {
			t.Errorf("w[%d]: got %08x, want 0", i, w[i])
		}
	}
	if w[15] != 0x18 {
		t.Errorf("w[15]: got %08x, want 00000018", w[15])
	}
	// sigma1(w[14]) + w[9] + sigma0(w[1]) + w[0] with only w[0] set.
	if w[16] != 0x61626380 {
		t.Errorf("w[16]: got %08x, want 61626380", w[16])
	}
}

// TestCompressTrace checks the first and last round of the FIPS 180-4
// "abc" example.
func TestCompressTrace(t *testing.T) {
	state, trace := CompressTrace(InitialState, abcBlock())

	wantFirst := RoundState{
		0x5d6aebcd, 0x6a09e667, 0xbb67ae85, 0x3c6ef372,
		0xfa2a4622, 0x510e527f, 0x9b05688c, 0x1f83d9ab,
	}
	if trace[0] != wantFirst {
		t.Errorf("round 0: got %s, want %s", spew.Sdump(trace[0]), spew.Sdump(wantFirst))
	}

	wantLast := RoundState{
		0x506e3058, 0xd39a2165, 0x04d24d6c, 0xb85e2ce9,
		0x5ef50f24, 0xfb121210, 0x948d25b6, 0x961f4894,
	}
	if trace[63] != wantLast {
		t.Errorf("round 63: got %s, want %s", spew.Sdump(trace[63]), spew.Sdump(wantLast))
	}

	if state != Compress(InitialState, abcBlock()) {
		t.Errorf("CompressTrace and Compress disagree")
	}
	for i := range state {
		if state[i] != InitialState[i]+trace[63][i] {
			t.Errorf("state word %d: got %08x, want %08x", i, state[i], InitialState[i]+trace[63][i])
		}
	}
}

func TestCompressDoesNotMutateInput(t *testing.T) {
	initial := InitialState
	block := abcBlock()
	blockCopy := *block
	_ = Compress(initial, block)
	if initial != InitialState {
		t.Errorf("Compress modified the incoming state")
	}
	if *block != blockCopy {
		t.Errorf("Compress modified the block")
	}
}

func TestHashStateDigest(t *testing.T) {
	digest := InitialState.Digest()
	const want = "6a09e667bb67ae853c6ef372a54ff53a510e527f9b05688c1f83d9ab5be0cd19"
	if digest.String() != want {
		t.Errorf("Digest: got %s, want %s", digest, want)
	}
}

func TestRoundConstant(t *testing.T) {
	if RoundConstant(0) != 0x428a2f98 || RoundConstant(63) != 0xc67178f2 {
		t.Errorf("RoundConstant: unexpected first or last constant")
	}
}
