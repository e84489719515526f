package typesys

import (
	"strings"
	"testing"

	"stt/internal/sty"
)

func completeSystem(t *testing.T) *TypeSystem {
	t.Helper()
	b := NewSystemBuilder()
	if err := b.Import(baseLib(t)); err != nil {
		t.Fatal(err)
	}
	sys, errs := b.Finalize()
	if len(errs) > 0 {
		t.Fatalf("Failed to finalize system: %v", errs)
	}
	return sys
}

func TestSerializeRoundTrip(t *testing.T) {
	sys := completeSystem(t)
	back, err := Deserialize(sys.Serialize())
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if back.Id() != sys.Id() {
		t.Fatal("round trip changed the system id")
	}
	if back.CountTypes() != sys.CountTypes() || back.CountLibs() != sys.CountLibs() {
		t.Fatal("round trip changed the counts")
	}
	for _, id := range sys.SemIds() {
		a := sys.Index(id)
		bTy, ok := back.Get(id)
		if !ok {
			t.Fatalf("member %s lost in round trip", id)
		}
		if !sty.Equal(a, bTy) {
			t.Fatalf("member %s changed in round trip", id)
		}
	}
}

func TestDeserializeRejectsCorruption(t *testing.T) {
	sys := completeSystem(t)
	data := sys.Serialize()

	if _, err := Deserialize(data[:len(data)-1]); err == nil {
		t.Error("truncated input accepted")
	}
	if _, err := Deserialize(append(append([]byte{}, data...), 0xff)); err == nil {
		t.Error("trailing byte accepted")
	}

	// Flipping a byte inside an entry body breaks either decoding or
	// the ascending-id check.
	mut := append([]byte{}, data...)
	mut[len(mut)-1] ^= 0x01
	if back, err := Deserialize(mut); err == nil && back.Id() == sys.Id() {
		t.Error("mutated payload decoded to the same system")
	}
}

func TestDeserializeRejectsUnsortedLibs(t *testing.T) {
	base := baseLib(t)
	app := appLib(t, base)
	b := NewSystemBuilder()
	if err := b.Import(base); err != nil {
		t.Fatal(err)
	}
	if err := b.Import(app); err != nil {
		t.Fatal(err)
	}
	sys, errs := b.Finalize()
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	data := sys.Serialize()
	if data[0] != 2 {
		t.Fatalf("%d libraries serialized, want 2", data[0])
	}
	// Swapping the two library ids makes the byte string non-canonical
	// without touching any entry.
	swapped := append([]byte{}, data...)
	copy(swapped[1:33], data[33:65])
	copy(swapped[33:65], data[1:33])
	if _, err := Deserialize(swapped); err == nil {
		t.Fatal("unsorted library ids accepted")
	}
}

func TestSizeAccountingMatchesSerialization(t *testing.T) {
	base := baseLib(t)
	app := appLib(t, base)
	b := NewSystemBuilder()
	if err := b.Import(base); err != nil {
		t.Fatal(err)
	}
	if err := b.Import(app); err != nil {
		t.Fatal(err)
	}
	sys, errs := b.Finalize()
	if len(errs) > 0 {
		t.Fatal(errs)
	}

	if got := len(sys.Serialize()); sys.size != got {
		t.Errorf("accounted size %d, serialized form is %d bytes", sys.size, got)
	}
	back, err := Deserialize(sys.Serialize())
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if back.size != sys.size {
		t.Errorf("round trip accounted %d bytes, want %d", back.size, sys.size)
	}
}

func TestIndexPanicsOnUnknown(t *testing.T) {
	sys := completeSystem(t)
	defer func() {
		if recover() == nil {
			t.Error("Index on an unknown id should panic")
		}
	}()
	sys.Index(sty.SemId{0xde, 0xad})
}

func TestSysIdParse(t *testing.T) {
	sys := completeSystem(t)
	id := sys.Id()
	if !strings.HasPrefix(id.String(), "urn:ubideco:sts:") {
		t.Fatalf("unexpected rendering %q", id.String())
	}
	back, err := ParseTypeSysId(id.String())
	if err != nil {
		t.Fatalf("ParseTypeSysId failed: %v", err)
	}
	if back != id {
		t.Fatal("round trip changed the id")
	}
}

func TestSystemDisplay(t *testing.T) {
	sys := completeSystem(t)
	out := sys.String()
	if !strings.HasPrefix(out, "typesys -- ") {
		t.Errorf("dump does not open with the system header: %q", out)
	}
	if strings.Count(out, "data ") != int(sys.CountTypes()) {
		t.Errorf("dump member count does not match the system: %q", out)
	}
}

func TestBoundsErrorMessage(t *testing.T) {
	err := &BoundsError{What: "serialized size", Limit: MaxSize}
	if !strings.Contains(err.Error(), "serialized size") {
		t.Errorf("unhelpful bounds error %q", err)
	}
}
