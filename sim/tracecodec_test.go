package sim

import (
	"reflect"
	"testing"
)

// codecFixture produces a realistic trace to push through the codec
func codecFixture(t *testing.T) *RunResult {
	t.Helper()

	// A cyclic workload produces a long, highly repetitive trace
	sequence := make([]int, 0, 300)
	for i := 0; i < 100; i++ {
		sequence = append(sequence, i%7, (i+2)%7, (i+4)%7)
	}

	result, err := RunLRU(sequence, 4)
	if err != nil {
		t.Fatalf("RunLRU failed: %v", err)
	}
	return result
}

// TestTraceRoundTrip tests encode/decode for every compression type
func TestTraceRoundTrip(t *testing.T) {
	original := codecFixture(t)

	for _, compression := range []CompressionType{CompressionNone, CompressionLZ4, CompressionSnappy} {
		encoded, err := EncodeTrace(original, compression)
		if err != nil {
			t.Fatalf("EncodeTrace(%d) failed: %v", compression, err)
		}

		decoded, err := DecodeTrace(encoded)
		if err != nil {
			t.Fatalf("DecodeTrace(%d) failed: %v", compression, err)
		}

		if !reflect.DeepEqual(original, decoded) {
			t.Errorf("Compression %d: round trip changed the trace", compression)
		}
	}
}

// TestTraceCompressionShrinks tests that a repetitive trace actually gets
// smaller under compression
func TestTraceCompressionShrinks(t *testing.T) {
	original := codecFixture(t)

	plain, err := EncodeTrace(original, CompressionNone)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	for _, compression := range []CompressionType{CompressionLZ4, CompressionSnappy} {
		encoded, err := EncodeTrace(original, compression)
		if err != nil {
			t.Fatalf("EncodeTrace(%d) failed: %v", compression, err)
		}
		if len(encoded) >= len(plain) {
			t.Errorf("Compression %d: expected smaller than %d bytes, got %d",
				compression, len(plain), len(encoded))
		}
	}
}

// TestTraceEmptyRoundTrip tests the degenerate empty trace
func TestTraceEmptyRoundTrip(t *testing.T) {
	original, err := RunFIFO(nil, 3)
	if err != nil {
		t.Fatalf("RunFIFO failed: %v", err)
	}

	encoded, err := EncodeTrace(original, CompressionSnappy)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}
	decoded, err := DecodeTrace(encoded)
	if err != nil {
		t.Fatalf("DecodeTrace failed: %v", err)
	}

	if decoded.Faults != 0 || len(decoded.Steps) != 0 {
		t.Errorf("Expected empty decoded trace, got %d faults and %d steps", decoded.Faults, len(decoded.Steps))
	}
}

// TestTraceChecksumDetection tests that payload corruption is caught
func TestTraceChecksumDetection(t *testing.T) {
	original := codecFixture(t)

	encoded, err := EncodeTrace(original, CompressionNone)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	// Flip a byte in the payload
	encoded[len(encoded)-1] ^= 0xFF

	_, err = DecodeTrace(encoded)
	if !IsErrorCode(err, ErrCodeTraceCorrupted) {
		t.Errorf("Expected ErrCodeTraceCorrupted, got %v", err)
	}
}

// TestTraceBadMagic tests rejection of foreign data
func TestTraceBadMagic(t *testing.T) {
	data := make([]byte, 32)

	_, err := DecodeTrace(data)
	if !IsErrorCode(err, ErrCodeTraceFormat) {
		t.Errorf("Expected ErrCodeTraceFormat, got %v", err)
	}
}

// TestTraceTruncated tests rejection of short input
func TestTraceTruncated(t *testing.T) {
	original := codecFixture(t)

	encoded, err := EncodeTrace(original, CompressionNone)
	if err != nil {
		t.Fatalf("EncodeTrace failed: %v", err)
	}

	for _, n := range []int{0, 5, traceHeaderSize - 1} {
		_, err := DecodeTrace(encoded[:n])
		if !IsErrorCode(err, ErrCodeTraceFormat) {
			t.Errorf("Truncation to %d bytes: expected ErrCodeTraceFormat, got %v", n, err)
		}
	}
}

// TestCompressionTypeFromName tests config-name mapping
func TestCompressionTypeFromName(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"none": CompressionNone,
		"": CompressionNone,
		"lz4": CompressionLZ4,
		"snappy": CompressionSnappy,
	} {
		got, err := CompressionTypeFromName(name)
		if err != nil {
			t.Errorf("CompressionTypeFromName(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("CompressionTypeFromName(%q): expected %d, got %d", name, want, got)
		}
	}

	if _, err := CompressionTypeFromName("zstd"); err == nil {
		t.Error("Expected error for unsupported compression name")
	}
}
