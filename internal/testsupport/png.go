package testsupport

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"
)

// TextChunk describes a PNG text chunk to embed in a generated image.
type TextChunk struct {
	// Type is one of tEXt, zTXt or iTXt. Empty means tEXt.
	Type       string
	Key        string
	Value      string
	Compressed bool
}

// PNG encodes a 2x2 image and splices the given text chunks in right after
// the IHDR chunk, where image editors usually write them.
func PNG(t testing.TB, chunks ...TextChunk) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 0xff, A: 0xff})
	var encoded bytes.Buffer
	if err := png.Encode(&encoded, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	raw := encoded.Bytes()

	// signature (8) + IHDR length/type/data/crc (4+4+13+4)
	const ihdrEnd = 8 + 25
	var out bytes.Buffer
	out.Write(raw[:ihdrEnd])
	for _, chunk := range chunks {
		out.Write(encodeChunk(t, chunk))
	}
	out.Write(raw[ihdrEnd:])
	return out.Bytes()
}

// WritePNG writes a generated PNG into dir and returns its path.
func WritePNG(t testing.TB, dir, name string, chunks ...TextChunk) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), PNG(t, chunks...))
}

// WorkflowChunks returns the prompt/workflow pair an image generator embeds.
func WorkflowChunks(workflowJSON string) []TextChunk {
	return []TextChunk{
		{Key: "prompt", Value: `{"3":{"class_type":"KSampler"}}`},
		{Key: "workflow", Value: workflowJSON},
	}
}

func encodeChunk(t testing.TB, chunk TextChunk) []byte {
	t.Helper()

	chunkType := chunk.Type
	if chunkType == "" {
		chunkType = "tEXt"
	}
	var data bytes.Buffer
	data.WriteString(chunk.Key)
	data.WriteByte(0)
	switch chunkType {
	case "tEXt":
		data.WriteString(chunk.Value)
	case "zTXt":
		data.WriteByte(0)
		data.Write(deflate(t, chunk.Value))
	case "iTXt":
		if chunk.Compressed {
			data.Write([]byte{1, 0})
		} else {
			data.Write([]byte{0, 0})
		}
		data.WriteByte(0) // language tag
		data.WriteByte(0) // translated keyword
		if chunk.Compressed {
			data.Write(deflate(t, chunk.Value))
		} else {
			data.WriteString(chunk.Value)
		}
	default:
		t.Fatalf("unsupported chunk type %q", chunkType)
	}

	var out bytes.Buffer
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(data.Len()))
	out.Write(length[:])
	out.WriteString(chunkType)
	out.Write(data.Bytes())

	sum := crc32.NewIEEE()
	sum.Write([]byte(chunkType))
	sum.Write(data.Bytes())
	var crc [4]byte
	binary.BigEndian.PutUint32(crc[:], sum.Sum32())
	out.Write(crc[:])
	return out.Bytes()
}

func deflate(t testing.TB, value string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write([]byte(value)); err != nil {
		t.Fatalf("deflate: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zlib writer: %v", err)
	}
	return buf.Bytes()
}
