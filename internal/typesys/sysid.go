package typesys

import (
	"bytes"

	"stt/internal/sty"
)

// sysIdTag is the domain-separation tag of the system id space.
const sysIdTag = "urn:ubideco:strict-types:sys:v02"

// sysIdHRI is the human-readable prefix of rendered system ids.
const sysIdHRI = "sts"

// TypeSysId is the 32-byte content hash identifying a whole type
// system snapshot. It shares the encoding family of sty.SemId but is a
// distinct type in a domain-separated id space: the two can never be
// confused at the API surface.
type TypeSysId [32]byte

// ParseTypeSysId parses a rendered system id, verifying its checksum.
func ParseTypeSysId(s string) (TypeSysId, error) {
	payload, err := sty.ParseURN(sysIdHRI, s)
	return TypeSysId(payload), err
}

// Compare orders ids bytewise, ascending.
func (id TypeSysId) Compare(other TypeSysId) int { return bytes.Compare(id[:], other[:]) }

func (id TypeSysId) String() string { return sty.RenderURN(sysIdHRI, id, true) }

// URN renders the id with or without its mnemonic suffix.
func (id TypeSysId) URN(withMnemonic bool) string { return sty.RenderURN(sysIdHRI, id, withMnemonic) }

// Id computes the system id: a tagged hash over the ordered member
// library ids and the ordered member semantic ids. It is recomputed
// from current content on each call.
func (s *TypeSystem) Id() TypeSysId {
	h := sty.NewTaggedHasher(sysIdTag)
	var count [4]byte
	putU24(count[:3], uint32(len(s.libs)))
	h.Write(count[:3])
	for _, libId := range s.libs {
		h.Write(libId[:])
	}
	putU24(count[:3], uint32(len(s.ids)))
	h.Write(count[:3])
	for _, id := range s.ids {
		h.Write(id[:])
	}
	var id TypeSysId
	copy(id[:], h.Sum(nil))
	return id
}

func putU24(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
