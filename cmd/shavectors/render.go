package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// cborEncMode encodes with Core Deterministic Encoding, so a suite always
// produces the same bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("CBOR encoder initialization failed: " + err.Error())
	}
}

const rule = "======================================================================"

func render(w io.Writer, format string, suite *vectorSuite) error {
	switch format {
	case formatText:
		return renderText(w, suite)
	case formatVerilog:
		return renderVerilog(w, suite)
	case formatYAML:
		return renderYAML(w, suite)
	case formatCBOR:
		return renderCBOR(w, suite)
	}
	return errors.Errorf("unknown format %q", format)
}

// errWriter keeps the first write error so rendering code can print freely.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) section(title string) {
	ew.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

func renderText(w io.Writer, suite *vectorSuite) error {
	ew := &errWriter{w: w}

	ew.section("SHA-256 Test Vectors")
	for i, digest := range suite.Digests {
		ew.printf("\nTest %d: %s\n", i+1, digest.Name)
		ew.printf("Hash:     %s\n", digest.Hash)
		ew.printf("Verilog:  256'h%s\n", digest.Hash)
		if !digest.Matches {
			ew.printf("MISMATCH: expected %s\n", digest.Expected)
		}
	}

	genesis := suite.Genesis
	ew.section("Genesis Block (" + genesis.Network + ")")
	ew.printf("Header: %s\n", genesis.Header)
	ew.printf("Length: %d bytes\n", suite.Layout.MessageLength)
	ew.printf("\nHash (natural order): %s\n", genesis.Hash)
	ew.printf("Hash (display order): %s\n", genesis.DisplayHash)
	ew.printf("\nLeading zero bytes: %d (natural), %d (display)\n",
		genesis.LeadingZeroBytes, genesis.DisplayLeadingZeroBytes)
	if genesis.MatchesKnownHash {
		ew.printf("Matches known genesis block hash\n")
	} else {
		ew.printf("Doesn't match known genesis block hash %s\n", genesis.ExpectedDisplayHash)
	}

	ew.section("Difficulty Check")
	ew.printf("Bits field: %s\n", genesis.Bits)
	ew.printf("Target:     %s\n", genesis.Target)
	ew.printf("Hash:       %s\n", genesis.HashValue)
	if genesis.Valid {
		ew.printf("Hash is less than target (valid proof of work)\n")
	} else {
		ew.printf("Hash exceeds target (invalid proof of work)\n")
	}

	ew.section("Block Structure")
	ew.printf("%d-byte header is processed as:\n", suite.Layout.MessageLength)
	for i, block := range suite.Layout.Blocks {
		ew.printf("  Block %d: %d message bytes + %d padding bytes\n",
			i, block.MessageBytes, len(block.Data)/2-block.MessageBytes)
		ew.printf("           %s\n", block.Data)
	}
	ew.printf("  Then: second SHA-256 on the result\n")
	ew.printf("\nTotal: %d compressions per mining attempt\n", suite.Layout.CompressionsPerDoubleHash)

	if suite.Mining != nil {
		ew.section("Mini Mining Example")
		ew.printf("Finding a hash with %d leading zero bytes...\n", suite.Mining.ZeroBytes)
		if suite.Mining.Found {
			ew.printf("Found nonce: %d\n", suite.Mining.Nonce)
			ew.printf("Hash: %s\n", suite.Mining.Hash)
		} else {
			ew.printf("Didn't find one in %d attempts\n", suite.Mining.MaxNonce)
		}
	}

	if suite.Trace != nil {
		ew.section(fmt.Sprintf("Compression Trace (%q, block 0)", suite.Trace.Message))
		ew.printf("Block: %s\n", suite.Trace.Block)
		for i := 0; i < len(suite.Trace.Schedule); i += 8 {
			ew.printf("W[%2d..%2d]: %s\n", i, i+7, strings.Join(suite.Trace.Schedule[i:i+8], " "))
		}
		ew.printf("\nRound  a        b        c        d        e        f        g        h\n")
		for i, round := range suite.Trace.Rounds {
			ew.printf("%5d  %s\n", i, strings.Join(round, " "))
		}
		ew.printf("\nState: %s\n", strings.Join(suite.Trace.State, " "))
	}

	return ew.err
}

func renderVerilog(w io.Writer, suite *vectorSuite) error {
	ew := &errWriter{w: w}

	ew.printf("// Generated by shavectors. Do not edit.\n")
	for _, digest := range suite.Digests {
		ew.printf("localparam [255:0] %s = 256'h%s;\n", verilogName("SHA256", digest.Name), digest.Hash)
	}

	genesis := suite.Genesis
	ew.printf("\n// %s genesis header\n", genesis.Network)
	ew.printf("localparam [639:0] GENESIS_HEADER = 640'h%s;\n", genesis.Header)
	ew.printf("localparam [255:0] GENESIS_HASH = 256'h%s;\n", genesis.Hash)
	ew.printf("localparam [255:0] GENESIS_TARGET = 256'h%s;\n", genesis.Target)
	ew.printf("localparam [31:0] GENESIS_BITS = 32'h%s;\n", strings.TrimPrefix(genesis.Bits, "0x"))
	for i, block := range suite.Layout.Blocks {
		ew.printf("localparam [511:0] GENESIS_BLOCK%d = 512'h%s;\n", i, block.Data)
	}

	if suite.Mining != nil && suite.Mining.Found {
		ew.printf("\n// mini mining, %d leading zero bytes\n", suite.Mining.ZeroBytes)
		ew.printf("localparam [31:0] MINI_NONCE = 32'd%d;\n", suite.Mining.Nonce)
		ew.printf("localparam [255:0] MINI_HASH = 256'h%s;\n", suite.Mining.Hash)
	}

	if suite.Trace != nil {
		ew.printf("\n// compression trace of %q, block 0\n", suite.Trace.Message)
		ew.printf("localparam [511:0] TRACE_BLOCK = 512'h%s;\n", suite.Trace.Block)
		for i, round := range suite.Trace.Rounds {
			ew.printf("localparam [255:0] TRACE_ROUND%d = 256'h%s;\n", i, strings.Join(round, ""))
		}
		ew.printf("localparam [255:0] TRACE_STATE = 256'h%s;\n", strings.Join(suite.Trace.State, ""))
	}

	return ew.err
}

// verilogName builds an upper case identifier from prefix and a vector name.
func verilogName(prefix, name string) string {
	fields := strings.FieldsFunc(strings.ToUpper(name), func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	})
	return strings.Join(append([]string{prefix}, fields...), "_")
}

func renderYAML(w io.Writer, suite *vectorSuite) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	err := encoder.Encode(suite)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(encoder.Close())
}

func renderCBOR(w io.Writer, suite *vectorSuite) error {
	return errors.WithStack(cborEncMode.NewEncoder(w).Encode(suite))
}
