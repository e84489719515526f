package sty

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// semIdTag is the domain-separation tag of the semantic id space.
// Exactly 32 ASCII bytes; changing it would change every computed id.
const semIdTag = "urn:ubideco:strict-types:typ:v02"

// semIdHRI is the human-readable prefix of rendered semantic ids.
const semIdHRI = "sem"

// SemId is the 32-byte content hash identifying one type by its
// structure, including transitively the ids of every referenced type.
type SemId [32]byte

// NewTaggedHasher returns a sha256 hasher pre-seeded with the double
// tag hash of the given domain-separation tag, the shared construction
// of every id kind in the system.
func NewTaggedHasher(tag string) hash.Hash {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	return h
}

// ComputeSemId derives the semantic id of a compiled type from its
// canonical encoding.
func ComputeSemId(ty Ty[SemId]) SemId {
	h := NewTaggedHasher(semIdTag)
	h.Write(Encode(ty))
	var id SemId
	copy(id[:], h.Sum(nil))
	return id
}

// ParseSemId parses a rendered semantic id, verifying its checksum.
func ParseSemId(s string) (SemId, error) {
	payload, err := ParseURN(semIdHRI, s)
	return SemId(payload), err
}

// Compare orders ids bytewise, ascending.
func (id SemId) Compare(other SemId) int { return bytes.Compare(id[:], other[:]) }

// Hex returns the plain lowercase hex form of the id.
func (id SemId) Hex() string { return hex.EncodeToString(id[:]) }

func (id SemId) String() string { return RenderURN(semIdHRI, id, true) }

// URN renders the id with or without its mnemonic suffix.
func (id SemId) URN(withMnemonic bool) string { return RenderURN(semIdHRI, id, withMnemonic) }

func (SemId) sealedRef() {}
