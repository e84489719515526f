package sty

// Translate rebuilds a type node with every nested reference mapped
// through f, converting between reference kinds. The node structure is
// preserved exactly; only the references change.
func Translate[A, B Ref](ty Ty[A], f func(A) (B, error)) (Ty[B], error) {
	var zero Ty[B]
	out := Ty[B]{
		kind:     ty.kind,
		prim:     ty.prim,
		variants: ty.variants,
		key:      ty.key,
		arrayLen: ty.arrayLen,
		sizing:   ty.sizing,
	}
	if len(ty.fields) > 0 {
		out.fields = make([]Field[B], len(ty.fields))
		for i, fld := range ty.fields {
			ref, err := f(fld.Ref)
			if err != nil {
				return zero, err
			}
			out.fields[i] = Field[B]{Name: fld.Name, Ref: ref}
		}
	}
	if len(ty.tuple) > 0 {
		out.tuple = make([]B, len(ty.tuple))
		for i, r := range ty.tuple {
			ref, err := f(r)
			if err != nil {
				return zero, err
			}
			out.tuple[i] = ref
		}
	}
	switch ty.kind {
	case KindArray, KindList, KindSet, KindMap, KindOption:
		ref, err := f(ty.elem)
		if err != nil {
			return zero, err
		}
		out.elem = ref
	}
	return out, nil
}
