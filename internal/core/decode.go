package core

// decode.go turns a byte buffer of unknown encoding into text.
//
// Files come from phones and office PCs that never say what they are. UTF-8
// (with or without BOM) and Shift-JIS are both common. The strategies run in
// order and the first one that yields no U+FFFD wins; the last one always
// wins.

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// Encoding names the strategy that produced a decoded text.
type Encoding string

const (
	EncodingUTF8          Encoding = "utf-8"
	EncodingShiftJIS      Encoding = "shift_jis"
	EncodingShiftJISTable Encoding = "shift_jis-table"
)

// Decoded is the output of Decode.
type Decoded struct {
	Text     string
	Encoding Encoding
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode never fails. In the worst case the text carries U+FFFD where bytes
// could not be mapped.
func Decode(b []byte) Decoded {
	if s, ok := decodeUTF8(b); ok {
		return Decoded{Text: s, Encoding: EncodingUTF8}
	}
	if s, ok := decodeShiftJIS(b); ok {
		return Decoded{Text: s, Encoding: EncodingShiftJIS}
	}
	return Decoded{Text: decodeShiftJISTable(b), Encoding: EncodingShiftJISTable}
}

func decodeUTF8(b []byte) (string, bool) {
	b = bytes.TrimPrefix(b, utf8BOM)
	s := strings.ToValidUTF8(string(b), string(utf8.RuneError))
	return s, !strings.ContainsRune(s, utf8.RuneError)
}

func decodeShiftJIS(b []byte) (string, bool) {
	out, err := japanese.ShiftJIS.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	s := string(out)
	return s, !strings.ContainsRune(s, utf8.RuneError)
}

// decodeShiftJISTable walks the buffer one character at a time so that a bad
// lead byte costs one character instead of desynchronising the rest of the
// line. User-defined characters (lead 0xF0-0xF9) map to the private use area
// the way Windows-31J does.
func decodeShiftJISTable(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))

	dec := japanese.ShiftJIS.NewDecoder()
	for i := 0; i < len(b); {
		n := sjisCharLen(b[i:])
		chunk := b[i : i+n]
		i += n

		if n == 1 && chunk[0] < utf8.RuneSelf {
			sb.WriteByte(chunk[0])
			continue
		}

		out, err := dec.Bytes(chunk)
		dec.Reset()
		if err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
			sb.Write(out)
			continue
		}
		if r, ok := sjisUserDefined(chunk); ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(utf8.RuneError)
	}
	return sb.String()
}

// sjisCharLen returns the byte length of the character starting at b[0].
func sjisCharLen(b []byte) int {
	c := b[0]
	isLead := (c >= 0x81 && c <= 0x9F) || (c >= 0xE0 && c <= 0xFC)
	if !isLead || len(b) < 2 {
		return 1
	}
	t := b[1]
	if (t >= 0x40 && t <= 0x7E) || (t >= 0x80 && t <= 0xFC) {
		return 2
	}
	return 1
}

func sjisUserDefined(chunk []byte) (rune, bool) {
	if len(chunk) != 2 || chunk[0] < 0xF0 || chunk[0] > 0xF9 {
		return 0, false
	}
	lead, trail := int(chunk[0]), int(chunk[1])
	offset := 0x40
	if trail >= 0x80 {
		offset = 0x41
	}
	pointer := (lead-0xC1)*188 + trail - offset
	return rune(0xE000 - 8836 + pointer), true
}
