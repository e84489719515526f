package layout

import (
	"fmt"

	"stt/internal/sty"
	"stt/internal/typesys"
)

// TreeOf derives the layout of the type with the given id by a
// preorder walk over its composition within sys. Nested references are
// followed through the system; a reference back to a type already on
// the walk path is emitted as a leaf instead of descending, so cyclic
// type graphs produce a finite layout.
func TreeOf(sys *typesys.TypeSystem, id sty.SemId) (TypeLayout, error) {
	ty, ok := sys.Get(id)
	if !ok {
		return TypeLayout{}, fmt.Errorf("type %s is not a member of the system", id)
	}
	w := &treeWalker{sys: sys, onPath: map[sty.SemId]bool{id: true}}
	w.walkTy("", ty, 0)
	return TypeLayout{items: w.items}, nil
}

type treeWalker struct {
	sys    *typesys.TypeSystem
	onPath map[sty.SemId]bool
	items  []Item
}

func (w *treeWalker) emit(label, descr string, depth int) {
	w.items = append(w.items, Item{Label: label, Descr: descr, Depth: depth})
}

func (w *treeWalker) walkTy(label string, ty sty.Ty[sty.SemId], depth int) {
	switch ty.Kind() {
	case sty.KindPrimitive:
		w.emit(label, ty.Prim().String(), depth)
	case sty.KindEnum:
		w.emit(label, "enum "+ty.String(), depth)
	case sty.KindUnion:
		w.emit(label, "union", depth)
		for _, f := range ty.Fields() {
			w.walkRef(string(f.Name), f.Ref, depth+1)
		}
	case sty.KindStruct:
		w.emit(label, "rec", depth)
		for _, f := range ty.Fields() {
			w.walkRef(string(f.Name), f.Ref, depth+1)
		}
	case sty.KindTuple:
		w.emit(label, "tuple", depth)
		for i, ref := range ty.Tuple() {
			w.walkRef(fmt.Sprintf("_%d", i), ref, depth+1)
		}
	case sty.KindArray:
		w.emit(label, fmt.Sprintf("array ^ %d", ty.ArrayLen()), depth)
		w.walkRef("", ty.Elem(), depth+1)
	case sty.KindList:
		w.emit(label, "list"+ty.Sizing().String(), depth)
		w.walkRef("", ty.Elem(), depth+1)
	case sty.KindSet:
		w.emit(label, "set"+ty.Sizing().String(), depth)
		w.walkRef("", ty.Elem(), depth+1)
	case sty.KindMap:
		w.emit(label, fmt.Sprintf("map %s ->%s", ty.Key(), ty.Sizing()), depth)
		w.walkRef("", ty.Elem(), depth+1)
	case sty.KindOption:
		w.emit(label, "option", depth)
		w.walkRef("", ty.Elem(), depth+1)
	case sty.KindUniChar:
		w.emit(label, "Char", depth)
	}
}

func (w *treeWalker) walkRef(label string, ref sty.SemId, depth int) {
	if w.onPath[ref] {
		w.emit(label, "ref "+ref.String(), depth)
		return
	}
	ty, ok := w.sys.Get(ref)
	if !ok {
		// Finalized systems are complete; tolerate and mark the hole
		// rather than descending.
		w.emit(label, "ref "+ref.String(), depth)
		return
	}
	w.onPath[ref] = true
	w.walkTy(label, ty, depth)
	delete(w.onPath, ref)
}
