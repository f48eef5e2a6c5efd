package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// extractRaw is the fallback text extractor for PDFs the structured library
// cannot decode. It works directly on the byte stream:
//
//  1. inflate every FlateDecode stream in the file
//  2. collect ToUnicode CMap tables (bfchar/bfrange) for custom font encodings
//  3. walk content streams for text-showing operators (Tj, TJ, ') and decode
//     literal and hex string operands through the merged CMap
//
// Each content stream that contains text becomes one page.
func extractRaw(data []byte) ([]string, error) {
	streams := inflateStreams(data)
	if len(streams) == 0 {
		return nil, fmt.Errorf("no decodable streams in PDF")
	}

	cmap := mergedCMap(streams)

	var pages []string
	for _, stream := range streams {
		if !bytes.Contains(stream, []byte("BT")) {
			continue
		}
		text := decodeContentStream(stream, cmap)
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no text operators found in PDF streams")
	}
	return pages, nil
}

var streamPattern = regexp.MustCompile(`(?s)stream\r?\n(.*?)endstream`)

// inflateStreams returns the inflated body of every stream object. Streams
// that are not Flate-compressed are passed through as-is.
func inflateStreams(data []byte) [][]byte {
	var out [][]byte
	for _, m := range streamPattern.FindAllSubmatch(data, -1) {
		body := m[1]
		if r, err := zlib.NewReader(bytes.NewReader(body)); err == nil {
			if inflated, err := io.ReadAll(r); err == nil || len(inflated) > 0 {
				out = append(out, inflated)
				r.Close()
				continue
			}
			r.Close()
		}
		out = append(out, body)
	}
	return out
}

var (
	bfCharPattern  = regexp.MustCompile(`(?s)beginbfchar(.*?)endbfchar`)
	bfRangePattern = regexp.MustCompile(`(?s)beginbfrange(.*?)endbfrange`)
	hexPairPattern = regexp.MustCompile(`<([0-9a-fA-F]+)>\s*<([0-9a-fA-F]+)>`)
	hexTriple      = regexp.MustCompile(`<([0-9a-fA-F]+)>\s*<([0-9a-fA-F]+)>\s*<([0-9a-fA-F]+)>`)
)

// mergedCMap folds every ToUnicode table found in the streams into a single
// code → rune mapping. Codes are 1 or 2 bytes wide depending on the table.
func mergedCMap(streams [][]byte) map[uint32]rune {
	cmap := make(map[uint32]rune)
	for _, stream := range streams {
		if !bytes.Contains(stream, []byte("beginbfchar")) &&
			!bytes.Contains(stream, []byte("beginbfrange")) {
			continue
		}
		for _, section := range bfCharPattern.FindAllSubmatch(stream, -1) {
			for _, pair := range hexPairPattern.FindAllSubmatch(section[1], -1) {
				src := hexValue(pair[1])
				dst := hexRune(pair[2])
				if dst != 0 {
					cmap[src] = dst
				}
			}
		}
		for _, section := range bfRangePattern.FindAllSubmatch(stream, -1) {
			for _, triple := range hexTriple.FindAllSubmatch(section[1], -1) {
				lo := hexValue(triple[1])
				hi := hexValue(triple[2])
				dst := hexRune(triple[3])
				if dst == 0 || hi < lo || hi-lo > 0xFFFF {
					continue
				}
				for c := lo; c <= hi; c++ {
					cmap[c] = dst + rune(c-lo)
				}
			}
		}
	}
	if len(cmap) == 0 {
		return nil
	}
	return cmap
}

func hexValue(h []byte) uint32 {
	b, err := hex.DecodeString(string(h))
	if err != nil {
		return 0
	}
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

// hexRune decodes the destination of a CMap entry as a UTF-16BE code unit.
// Surrogate pairs are rare in statement fonts and are ignored.
func hexRune(h []byte) rune {
	v := hexValue(h)
	if v == 0 || v > 0x10FFFF {
		return 0
	}
	return rune(v)
}

// decodeContentStream pulls the text out of one content stream, inserting
// line breaks on text-positioning operators (Td, TD, T*).
func decodeContentStream(stream []byte, cmap map[uint32]rune) string {
	var out strings.Builder
	i := 0
	for i < len(stream) {
		switch stream[i] {
		case '(':
			s, next := readLiteralString(stream, i)
			out.WriteString(s)
			i = next
		case '<':
			if i+1 < len(stream) && stream[i+1] == '<' {
				i += 2 // dictionary open, not a hex string
				continue
			}
			s, next := readHexString(stream, i, cmap)
			out.WriteString(s)
			i = next
		case 'T':
			if i+1 < len(stream) {
				switch stream[i+1] {
				case 'd', 'D', '*':
					out.WriteByte('\n')
					i += 2
					continue
				}
			}
			i++
		case 'E':
			if bytes.HasPrefix(stream[i:], []byte("ET")) {
				out.WriteByte('\n')
				i += 2
				continue
			}
			i++
		default:
			i++
		}
	}

	// Collapse the operator-driven breaks into clean lines.
	var lines []string
	for _, line := range strings.Split(out.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// readLiteralString consumes a (…) string starting at i, handling escapes
// and nested parentheses. Returns the decoded text and the index after the
// closing parenthesis.
func readLiteralString(stream []byte, i int) (string, int) {
	var out strings.Builder
	depth := 0
	for ; i < len(stream); i++ {
		c := stream[i]
		switch c {
		case '\\':
			if i+1 < len(stream) {
				i++
				switch stream[i] {
				case 'n':
					out.WriteByte('\n')
				case 't':
					out.WriteByte('\t')
				case '(', ')', '\\':
					out.WriteByte(stream[i])
				}
			}
		case '(':
			depth++
			if depth > 1 {
				out.WriteByte(c)
			}
		case ')':
			depth--
			if depth == 0 {
				return out.String(), i + 1
			}
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	return out.String(), i
}

// readHexString consumes a <…> string starting at i. With a CMap the bytes
// are interpreted as 2-byte character codes; without one, as Latin text.
func readHexString(stream []byte, i int, cmap map[uint32]rune) (string, int) {
	end := bytes.IndexByte(stream[i:], '>')
	if end < 0 {
		return "", len(stream)
	}
	hexStr := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F') {
			return r
		}
		return -1
	}, string(stream[i+1:i+end]))
	if len(hexStr)%2 == 1 {
		hexStr += "0"
	}
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return "", i + end + 1
	}

	var out strings.Builder
	if cmap != nil {
		for j := 0; j+1 < len(raw); j += 2 {
			code := uint32(raw[j])<<8 | uint32(raw[j+1])
			if r, ok := cmap[code]; ok {
				out.WriteRune(r)
			} else if r, ok := cmap[uint32(raw[j])]; ok {
				out.WriteRune(r)
			}
		}
	} else {
		for _, b := range raw {
			if b >= 0x20 && b < 0x7F {
				out.WriteByte(b)
			}
		}
	}
	return out.String(), i + end + 1
}
