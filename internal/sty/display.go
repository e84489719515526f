package sty

import (
	"fmt"
	"strings"
)

// String renders the node as a one-line type expression in the data
// definition notation used by library and system dumps.
func (t Ty[R]) String() string {
	var sb strings.Builder
	switch t.kind {
	case KindPrimitive:
		sb.WriteString(t.prim.String())
	case KindEnum:
		for i, v := range t.variants {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(v.String())
		}
	case KindUnion:
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteString(" | ")
			}
			fmt.Fprintf(&sb, "%s %s", f.Name, f.Ref)
		}
	case KindStruct:
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s %s", f.Name, f.Ref)
		}
	case KindTuple:
		sb.WriteByte('(')
		for i, r := range t.tuple {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(r.String())
		}
		sb.WriteByte(')')
	case KindArray:
		fmt.Fprintf(&sb, "[%s ^ %d]", t.elem, t.arrayLen)
	case KindList:
		fmt.Fprintf(&sb, "[%s%s]", t.elem, t.sizing)
	case KindSet:
		fmt.Fprintf(&sb, "{%s%s}", t.elem, t.sizing)
	case KindMap:
		fmt.Fprintf(&sb, "{%s -> %s%s}", t.key, t.elem, t.sizing)
	case KindOption:
		fmt.Fprintf(&sb, "%s?", t.elem)
	case KindUniChar:
		sb.WriteString("Char")
	default:
		fmt.Fprintf(&sb, "kind#%02X", uint8(t.kind))
	}
	return sb.String()
}
