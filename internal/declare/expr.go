package declare

import (
	"fmt"
	"strings"

	"stt/internal/ident"
	"stt/internal/sty"
)

// ParseRef parses a type expression into a symbolic reference.
//
// Grammar:
//
//	expr   := base "?"?
//	base   := "(" ")"                          unit
//	        | "(" expr ("," expr)+ ")"         tuple
//	        | "[" expr ("^" bound)? "]"        list or fixed array
//	        | "{" prim "->" expr sizing? "}"   map
//	        | "{" expr sizing? "}"             set
//	        | atom
//	bound  := len | min ".." max?
//	sizing := "^" min ".." max?
//	atom   := primitive | "Char" | Name | Lib "." Name
func ParseRef(s string) (sty.SymbolRef, error) {
	p := &exprParser{s: s}
	ref, err := p.parseExpr()
	if err != nil {
		return sty.SymbolRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.s) {
		return sty.SymbolRef{}, p.errf("unexpected trailing input")
	}
	return ref, nil
}

type exprParser struct {
	s   string
	pos int
}

func (p *exprParser) errf(format string, args ...any) error {
	return fmt.Errorf("type expression %q at offset %d: %s", p.s, p.pos, fmt.Sprintf(format, args...))
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.s) && (p.s[p.pos] == ' ' || p.s[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *exprParser) parseExpr() (sty.SymbolRef, error) {
	ref, err := p.parseBase()
	if err != nil {
		return ref, err
	}
	p.skipSpace()
	if p.peek() == '?' {
		p.pos++
		return sty.InlineRef(sty.Option(ref)), nil
	}
	return ref, nil
}

func (p *exprParser) parseBase() (sty.SymbolRef, error) {
	var zero sty.SymbolRef
	p.skipSpace()
	switch p.peek() {
	case '(':
		p.pos++
		p.skipSpace()
		if p.peek() == ')' {
			p.pos++
			return sty.InlineRef(sty.Prim[sty.SymbolRef](sty.PrimUnit)), nil
		}
		var refs []sty.SymbolRef
		for {
			ref, err := p.parseExpr()
			if err != nil {
				return zero, err
			}
			refs = append(refs, ref)
			p.skipSpace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			break
		}
		if err := p.expect(')'); err != nil {
			return zero, err
		}
		return sty.InlineRef(sty.Tuple(refs...)), nil
	case '[':
		p.pos++
		elem, err := p.parseExpr()
		if err != nil {
			return zero, err
		}
		p.skipSpace()
		sizing := ident.SizingU16
		fixed := -1
		if p.peek() == '^' {
			p.pos++
			first, err := p.parseUint()
			if err != nil {
				return zero, err
			}
			p.skipSpace()
			if strings.HasPrefix(p.s[p.pos:], "..") {
				p.pos += 2
				max, err := p.parseOptUint(65535)
				if err != nil {
					return zero, err
				}
				sizing = ident.NewSizing(first, max)
			} else {
				fixed = int(first)
			}
		}
		if err := p.expect(']'); err != nil {
			return zero, err
		}
		if fixed >= 0 {
			return sty.InlineRef(sty.Array(elem, uint16(fixed))), nil
		}
		return sty.InlineRef(sty.List(elem, sizing)), nil
	case '{':
		p.pos++
		first, err := p.parseExpr()
		if err != nil {
			return zero, err
		}
		p.skipSpace()
		if strings.HasPrefix(p.s[p.pos:], "->") {
			p.pos += 2
			key, ok := primOf(first)
			if !ok {
				return zero, p.errf("map key must be a primitive type")
			}
			val, err := p.parseExpr()
			if err != nil {
				return zero, err
			}
			sizing, err := p.parseSizing()
			if err != nil {
				return zero, err
			}
			if err := p.expect('}'); err != nil {
				return zero, err
			}
			return sty.InlineRef(sty.Map(key, val, sizing)), nil
		}
		sizing, err := p.parseSizing()
		if err != nil {
			return zero, err
		}
		if err := p.expect('}'); err != nil {
			return zero, err
		}
		return sty.InlineRef(sty.Set(first, sizing)), nil
	default:
		return p.parseAtom()
	}
}

func (p *exprParser) parseAtom() (sty.SymbolRef, error) {
	var zero sty.SymbolRef
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	atom := p.s[start:p.pos]
	if atom == "" {
		return zero, p.errf("expected a type name")
	}
	if atom == "Char" {
		return sty.InlineRef(sty.UniChar[sty.SymbolRef]()), nil
	}
	if lib, name, ok := strings.Cut(atom, "."); ok {
		l, err := ident.NewIdent(lib)
		if err != nil {
			return zero, err
		}
		n, err := ident.NewIdent(name)
		if err != nil {
			return zero, err
		}
		return sty.ExternRef(l, n), nil
	}
	if prim, ok := sty.PrimByName(atom); ok {
		return sty.InlineRef(sty.Prim[sty.SymbolRef](prim)), nil
	}
	name, err := ident.NewIdent(atom)
	if err != nil {
		return zero, err
	}
	return sty.NamedRef(name), nil
}

func (p *exprParser) parseSizing() (ident.Sizing, error) {
	p.skipSpace()
	if p.peek() != '^' {
		return ident.SizingU16, nil
	}
	p.pos++
	min, err := p.parseUint()
	if err != nil {
		return ident.Sizing{}, err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.s[p.pos:], "..") {
		return ident.Sizing{}, p.errf("expected \"..\" in sizing")
	}
	p.pos += 2
	max, err := p.parseOptUint(65535)
	if err != nil {
		return ident.Sizing{}, err
	}
	return ident.NewSizing(min, max), nil
}

func (p *exprParser) parseUint() (uint16, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.s) && p.s[p.pos] >= '0' && p.s[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == start {
		return 0, p.errf("expected a number")
	}
	var n uint32
	for _, c := range []byte(p.s[start:p.pos]) {
		n = n*10 + uint32(c-'0')
		if n > 65535 {
			return 0, p.errf("number out of the u16 range")
		}
	}
	return uint16(n), nil
}

func (p *exprParser) parseOptUint(def uint16) (uint16, error) {
	p.skipSpace()
	if c := p.peek(); c < '0' || c > '9' {
		return def, nil
	}
	return p.parseUint()
}

func primOf(ref sty.SymbolRef) (sty.Primitive, bool) {
	inline, ok := ref.Inline()
	if !ok || inline.Kind() != sty.KindPrimitive {
		return 0, false
	}
	return inline.Prim(), true
}
