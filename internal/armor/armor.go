// Package armor wraps canonical binary serializations into a fenced,
// line-oriented ASCII form suitable for mail, diffs and version
// control, with an optional zstd-compressed variant for large
// payloads.
package armor

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const lineWidth = 64

// ArmorError reports malformed armored input.
type ArmorError struct {
	What string
}

func (e *ArmorError) Error() string { return "invalid armor: " + e.What }

// Block is a parsed armored block.
type Block struct {
	Label    string // fence label, e.g. "STRICT TYPE SYSTEM"
	Id       string // identity header carried next to the payload
	Encoding string // empty or "zstd"
	Data     []byte // decoded (and decompressed) payload
}

// Enarmor fences data under the given label with an identity header.
func Enarmor(label, id string, data []byte) string {
	return enarmor(label, id, "", data)
}

// EnarmorZstd is Enarmor with the payload zstd-compressed first,
// recorded in an Encoding header.
func EnarmorZstd(label, id string, data []byte) (string, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", err
	}
	defer enc.Close()
	return enarmor(label, id, "zstd", enc.EncodeAll(data, nil)), nil
}

func enarmor(label, id, encoding string, data []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "-----BEGIN %s-----\n", label)
	fmt.Fprintf(&sb, "Id: %s\n", id)
	if encoding != "" {
		fmt.Fprintf(&sb, "Encoding: %s\n", encoding)
	}
	sb.WriteByte('\n')
	payload := base64.StdEncoding.EncodeToString(data)
	for len(payload) > lineWidth {
		sb.WriteString(payload[:lineWidth])
		sb.WriteByte('\n')
		payload = payload[lineWidth:]
	}
	sb.WriteString(payload)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "-----END %s-----\n", label)
	return sb.String()
}

// Dearmor parses an armored block, reversing Enarmor and, when the
// Encoding header says so, decompressing the payload.
func Dearmor(s string) (*Block, error) {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) < 3 {
		return nil, &ArmorError{What: "too few lines"}
	}
	first := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(first, "-----BEGIN ") || !strings.HasSuffix(first, "-----") {
		return nil, &ArmorError{What: "missing begin fence"}
	}
	block := &Block{Label: strings.TrimSuffix(strings.TrimPrefix(first, "-----BEGIN "), "-----")}
	last := strings.TrimSpace(lines[len(lines)-1])
	if last != "-----END "+block.Label+"-----" {
		return nil, &ArmorError{What: "missing or mismatched end fence"}
	}
	body := lines[1 : len(lines)-1]
	i := 0
	for ; i < len(body); i++ {
		line := strings.TrimSpace(body[i])
		if line == "" {
			i++
			break
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, &ArmorError{What: fmt.Sprintf("malformed header line %q", line)}
		}
		switch key {
		case "Id":
			block.Id = value
		case "Encoding":
			block.Encoding = value
		}
	}
	payload := strings.Join(body[i:], "")
	payload = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\r' {
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &ArmorError{What: "payload is not valid base64"}
	}
	switch block.Encoding {
	case "":
	case "zstd":
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, &ArmorError{What: "corrupted zstd payload"}
		}
	default:
		return nil, &ArmorError{What: fmt.Sprintf("unknown encoding %q", block.Encoding)}
	}
	block.Data = data
	return block, nil
}
