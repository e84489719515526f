package sty

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// URNNamespace is the namespace prefix of every textual identity.
const URNNamespace = "urn:ubideco:"

const checksumLen = 4

// IdParseError reports a malformed textual identity.
type IdParseError struct {
	Input  string
	Reason string
}

func (e *IdParseError) Error() string {
	return fmt.Sprintf("invalid identity %q: %s", e.Input, e.Reason)
}

func idChecksum(hri string, payload [32]byte) [checksumLen]byte {
	h := sha256.New()
	h.Write([]byte(hri))
	h.Write(payload[:])
	var sum [checksumLen]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// RenderURN encodes a 32-byte identity payload as
// "urn:ubideco:<hri>:<base58-payload-with-checksum>[#<mnemonic>]".
// The mnemonic is derived from the checksum and is purely a
// human-verification aid.
func RenderURN(hri string, payload [32]byte, withMnemonic bool) string {
	sum := idChecksum(hri, payload)
	data := make([]byte, 0, 32+checksumLen)
	data = append(data, payload[:]...)
	data = append(data, sum[:]...)
	s := URNNamespace + hri + ":" + base58.Encode(data)
	if withMnemonic {
		s += "#" + mnemonic(sum)
	}
	return s
}

// ParseURN reverses RenderURN. The "urn:ubideco:" and "<hri>:" prefixes
// and the "#mnemonic" suffix are all optional on input; checksum and,
// when present, mnemonic are verified.
func ParseURN(hri, s string) ([32]byte, error) {
	var payload [32]byte
	body := strings.TrimPrefix(s, URNNamespace)
	body = strings.TrimPrefix(body, hri+":")
	body, mnem, hasMnem := strings.Cut(body, "#")
	if body == "" {
		return payload, &IdParseError{Input: s, Reason: "empty payload"}
	}
	if strings.Contains(body, ":") {
		return payload, &IdParseError{Input: s, Reason: "unrecognized prefix"}
	}
	data, err := base58.Decode(body)
	if err != nil {
		return payload, &IdParseError{Input: s, Reason: "not a base58 string"}
	}
	if len(data) != 32+checksumLen {
		return payload, &IdParseError{Input: s, Reason: fmt.Sprintf("payload of %d bytes, expected %d", len(data), 32+checksumLen)}
	}
	copy(payload[:], data[:32])
	sum := idChecksum(hri, payload)
	if string(sum[:]) != string(data[32:]) {
		return payload, &IdParseError{Input: s, Reason: "checksum mismatch"}
	}
	if hasMnem && mnem != mnemonic(sum) {
		return payload, &IdParseError{Input: s, Reason: "mnemonic mismatch"}
	}
	return payload, nil
}

func mnemonic(sum [checksumLen]byte) string {
	return wordlist[sum[0]] + "-" + wordlist[sum[1]] + "-" + wordlist[sum[2]]
}
