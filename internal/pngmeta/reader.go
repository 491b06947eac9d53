// Package pngmeta extracts textual metadata (tEXt, zTXt and iTXt chunks) from
// PNG images without decoding pixel data.
package pngmeta

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

const (
	// maxChunkLength is the largest length the PNG format allows.
	maxChunkLength = 1<<31 - 1
	// maxTextChunk caps a single text value, stored or inflated.
	maxTextChunk = 64 << 20
)

var (
	// ErrNotPNG is returned when the stream does not start with the PNG signature.
	ErrNotPNG = errors.New("not a PNG image")
	// ErrChecksum is returned when a chunk CRC does not match its contents.
	ErrChecksum = errors.New("png chunk checksum mismatch")
	// ErrTextTooLarge is returned when a text chunk exceeds the size limit.
	ErrTextTooLarge = errors.New("png text chunk too large")
)

// ReadFile opens path and returns its text metadata.
func ReadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}

// Read returns the keyword/text pairs found before the first image data
// chunk. When a keyword repeats, the later value wins.
func Read(r io.Reader) (map[string]string, error) {
	br := bufio.NewReader(r)

	header := make([]byte, len(signature))
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("read png signature: %w", err)
	}
	if !bytes.Equal(header, signature) {
		return nil, ErrNotPNG
	}

	text := make(map[string]string)
	for {
		chunkType, length, err := readChunkHeader(br)
		if err != nil {
			return nil, err
		}
		switch chunkType {
		case "IDAT", "IEND":
			return text, nil
		case "tEXt", "zTXt", "iTXt":
			if length > maxTextChunk {
				return nil, fmt.Errorf("%w: %s declares %d bytes", ErrTextTooLarge, chunkType, length)
			}
			data, err := readChunkData(br, chunkType, length, true)
			if err != nil {
				return nil, err
			}
			key, value, err := decodeText(chunkType, data)
			if err != nil {
				return nil, fmt.Errorf("decode %s chunk: %w", chunkType, err)
			}
			text[key] = value
		default:
			if _, err := readChunkData(br, chunkType, length, false); err != nil {
				return nil, err
			}
		}
	}
}

func readChunkHeader(r io.Reader) (string, uint32, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return "", 0, fmt.Errorf("read chunk header: %w", err)
	}
	length := binary.BigEndian.Uint32(head[:4])
	chunkType := string(head[4:8])
	if length > maxChunkLength {
		return "", 0, fmt.Errorf("%s chunk length %d exceeds limit", chunkType, length)
	}
	return chunkType, length, nil
}

// readChunkData consumes the chunk body and its CRC. The body is buffered
// only when keep is set, and the buffer grows with the bytes actually read
// rather than the declared length.
func readChunkData(r io.Reader, chunkType string, length uint32, keep bool) ([]byte, error) {
	sum := crc32.NewIEEE()
	sum.Write([]byte(chunkType))

	var body bytes.Buffer
	dst := io.Writer(sum)
	if keep {
		dst = io.MultiWriter(sum, &body)
	}
	if _, err := io.CopyN(dst, r, int64(length)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read %s chunk: %w", chunkType, err)
	}

	var crc [4]byte
	if _, err := io.ReadFull(r, crc[:]); err != nil {
		return nil, fmt.Errorf("read %s checksum: %w", chunkType, err)
	}
	if sum.Sum32() != binary.BigEndian.Uint32(crc[:]) {
		return nil, fmt.Errorf("%w: %s", ErrChecksum, chunkType)
	}
	return body.Bytes(), nil
}

func decodeText(chunkType string, data []byte) (string, string, error) {
	keyword, rest, ok := bytes.Cut(data, []byte{0})
	if !ok {
		return "", "", errors.New("missing keyword terminator")
	}
	key, err := latin1(keyword)
	if err != nil {
		return "", "", err
	}

	switch chunkType {
	case "tEXt":
		value, err := latin1(rest)
		return key, value, err
	case "zTXt":
		if len(rest) < 1 {
			return "", "", errors.New("missing compression method")
		}
		raw, err := inflate(rest[1:])
		if err != nil {
			return "", "", err
		}
		value, err := latin1(raw)
		return key, value, err
	default:
		return decodeInternational(key, rest)
	}
}

// decodeInternational handles the iTXt layout: compression flag, method,
// language tag, translated keyword, then UTF-8 text.
func decodeInternational(key string, rest []byte) (string, string, error) {
	if len(rest) < 2 {
		return "", "", errors.New("truncated iTXt header")
	}
	compressed := rest[0] == 1
	rest = rest[2:]
	_, rest, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return "", "", errors.New("missing language tag terminator")
	}
	_, rest, ok = bytes.Cut(rest, []byte{0})
	if !ok {
		return "", "", errors.New("missing translated keyword terminator")
	}
	if compressed {
		raw, err := inflate(rest)
		if err != nil {
			return "", "", err
		}
		rest = raw
	}
	return key, string(rest), nil
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()
	out, err := io.ReadAll(io.LimitReader(zr, maxTextChunk+1))
	if err != nil {
		return nil, fmt.Errorf("inflate text: %w", err)
	}
	if len(out) > maxTextChunk {
		return nil, fmt.Errorf("%w: inflated text exceeds %d bytes", ErrTextTooLarge, maxTextChunk)
	}
	return out, nil
}

func latin1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode latin-1 text: %w", err)
	}
	return string(out), nil
}
