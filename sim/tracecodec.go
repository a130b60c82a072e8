package sim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression algorithm used for a trace
type CompressionType uint8

const (
	CompressionNone CompressionType = 0
	CompressionLZ4 CompressionType = 1
	CompressionSnappy CompressionType = 2
)

// CompressionTypeFromName maps a configuration name to a CompressionType
func CompressionTypeFromName(name string) (CompressionType, error) {
	switch name {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, fmt.Errorf("unsupported compression: %s", name)
	}
}

// Encoded trace layout:
// [0-1]: Magic number (0x7CAE for encoded traces)
// [2]: Format version
// [3]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [4-7]: Uncompressed payload size
// [8-11]: CRC32 of uncompressed payload
// [12+]: Payload (possibly compressed)

const (
	traceMagic = uint16(0x7CAE)
	traceVersion = uint8(1)
	traceHeaderSize = 12
)

// EncodeTrace serializes a RunResult to a compact binary form, optionally
// compressed. Long traces repeat small page sets heavily and compress well.
// Compression silently falls back to none when it would not shrink the
// payload; the header records what was actually used
func EncodeTrace(result *RunResult, compression CompressionType) ([]byte, error) {
	payload := encodeTracePayload(result)
	checksum := crc32.ChecksumIEEE(payload)

	var compressed []byte

	switch compression {
	case CompressionNone:
		compressed = payload

	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(payload)))
		n, err := lz4.CompressBlock(payload, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		if n == 0 || n >= len(payload) {
			// Incompressible payload
			compression = CompressionNone
			compressed = payload
		} else {
			compressed = buf[:n]
		}

	case CompressionSnappy:
		compressed = snappy.Encode(nil, payload)
		if len(compressed) >= len(payload) {
			compression = CompressionNone
			compressed = payload
		}

	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compression)
	}

	out := make([]byte, traceHeaderSize+len(compressed))
	binary.LittleEndian.PutUint16(out[0:2], traceMagic)
	out[2] = traceVersion
	out[3] = byte(compression)
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(payload)))
	binary.LittleEndian.PutUint32(out[8:12], checksum)
	copy(out[traceHeaderSize:], compressed)

	return out, nil
}

// DecodeTrace reverses EncodeTrace, verifying the payload checksum
func DecodeTrace(data []byte) (*RunResult, error) {
	if len(data) < traceHeaderSize {
		return nil, ErrTraceFormat("DecodeTrace", "trace shorter than header")
	}
	if binary.LittleEndian.Uint16(data[0:2]) != traceMagic {
		return nil, ErrTraceFormat("DecodeTrace", "bad magic number")
	}
	if data[2] != traceVersion {
		return nil, ErrTraceFormat("DecodeTrace", fmt.Sprintf("unsupported trace version %d", data[2]))
	}

	compression := CompressionType(data[3])
	uncompressedSize := binary.LittleEndian.Uint32(data[4:8])
	wantChecksum := binary.LittleEndian.Uint32(data[8:12])
	body := data[traceHeaderSize:]

	var payload []byte
	var err error

	switch compression {
	case CompressionNone:
		payload = body

	case CompressionLZ4:
		payload = make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(body, payload)
		if err != nil {
			return nil, fmt.Errorf("LZ4 decompression failed: %w", err)
		}
		if n != int(uncompressedSize) {
			return nil, ErrTraceFormat("DecodeTrace", fmt.Sprintf("LZ4 size mismatch: got %d, expected %d", n, uncompressedSize))
		}

	case CompressionSnappy:
		payload, err = snappy.Decode(nil, body)
		if err != nil {
			return nil, fmt.Errorf("snappy decompression failed: %w", err)
		}

	default:
		return nil, ErrTraceFormat("DecodeTrace", fmt.Sprintf("unsupported compression type %d", compression))
	}

	if len(payload) != int(uncompressedSize) {
		return nil, ErrTraceFormat("DecodeTrace", fmt.Sprintf("payload size mismatch: got %d, expected %d", len(payload), uncompressedSize))
	}

	gotChecksum := crc32.ChecksumIEEE(payload)
	if gotChecksum != wantChecksum {
		return nil, ErrTraceCorrupted("DecodeTrace", gotChecksum, wantChecksum)
	}

	return decodeTracePayload(payload)
}

// Payload layout: policy name (uint16 length + bytes), fault count uint32,
// step count uint32, then per step: page int32, fault flag byte, and the
// two frame snapshots (uint16 length + int32 pages each)

func encodeTracePayload(result *RunResult) []byte {
	var buf bytes.Buffer

	writeUint16(&buf, uint16(len(result.Policy)))
	buf.WriteString(result.Policy)
	writeUint32(&buf, uint32(result.Faults))
	writeUint32(&buf, uint32(len(result.Steps)))

	for _, step := range result.Steps {
		writeInt32(&buf, int32(step.Page))
		if step.PageFault {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		writeFrames(&buf, step.FramesBefore)
		writeFrames(&buf, step.FramesAfter)
	}

	return buf.Bytes()
}

func decodeTracePayload(payload []byte) (*RunResult, error) {
	r := &payloadReader{data: payload}

	nameLen, err := r.uint16()
	if err != nil {
		return nil, err
	}
	name, err := r.bytes(int(nameLen))
	if err != nil {
		return nil, err
	}
	faults, err := r.uint32()
	if err != nil {
		return nil, err
	}
	stepCount, err := r.uint32()
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Policy: string(name),
		Faults: int(faults),
		Steps: make([]StepRecord, 0, stepCount),
	}

	for i := uint32(0); i < stepCount; i++ {
		page, err := r.int32()
		if err != nil {
			return nil, err
		}
		faultByte, err := r.byte()
		if err != nil {
			return nil, err
		}
		before, err := r.frames()
		if err != nil {
			return nil, err
		}
		after, err := r.frames()
		if err != nil {
			return nil, err
		}

		result.Steps = append(result.Steps, StepRecord{
			Page: int(page),
			FramesBefore: before,
			FramesAfter: after,
			PageFault: faultByte != 0,
		})
	}

	if r.offset != len(payload) {
		return nil, ErrTraceFormat("DecodeTrace", "trailing bytes after last step")
	}

	return result, nil
}

func writeUint16(buf *bytes.Buffer, v uint16) {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	buf.Write(tmp[:])
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func writeInt32(buf *bytes.Buffer, v int32) {
	writeUint32(buf, uint32(v))
}

func writeFrames(buf *bytes.Buffer, frames []int) {
	writeUint16(buf, uint16(len(frames)))
	for _, page := range frames {
		writeInt32(buf, int32(page))
	}
}

// payloadReader walks an encoded payload with bounds checking
type payloadReader struct {
	data []byte
	offset int
}

func (r *payloadReader) bytes(n int) ([]byte, error) {
	if r.offset+n > len(r.data) {
		return nil, ErrTraceFormat("DecodeTrace", "truncated payload")
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b, nil
}

func (r *payloadReader) byte() (byte, error) {
	b, err := r.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *payloadReader) uint16() (uint16, error) {
	b, err := r.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *payloadReader) uint32() (uint32, error) {
	b, err := r.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *payloadReader) int32() (int32, error) {
	v, err := r.uint32()
	return int32(v), err
}

func (r *payloadReader) frames() ([]int, error) {
	count, err := r.uint16()
	if err != nil {
		return nil, err
	}
	frames := make([]int, 0, count)
	for i := uint16(0); i < count; i++ {
		page, err := r.int32()
		if err != nil {
			return nil, err
		}
		frames = append(frames, int(page))
	}
	return frames, nil
}
