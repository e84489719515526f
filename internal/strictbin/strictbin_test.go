package strictbin

import (
	"bytes"
	"errors"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	w := NewWriter()
	w.U8(0x2a)
	w.Bool(true)
	w.Bool(false)
	w.U16(0xbeef)
	w.U24(0x123456)
	w.U32(0xdeadbeef)
	w.TinyStr("hello")
	w.Raw([]byte{1, 2, 3})

	r := NewReader(w.Bytes())
	if v, err := r.U8(); err != nil || v != 0x2a {
		t.Fatalf("U8 = %v, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || !v {
		t.Fatalf("Bool = %v, %v", v, err)
	}
	if v, err := r.Bool(); err != nil || v {
		t.Fatalf("Bool = %v, %v", v, err)
	}
	if v, err := r.U16(); err != nil || v != 0xbeef {
		t.Fatalf("U16 = %#x, %v", v, err)
	}
	if v, err := r.U24(); err != nil || v != 0x123456 {
		t.Fatalf("U24 = %#x, %v", v, err)
	}
	if v, err := r.U32(); err != nil || v != 0xdeadbeef {
		t.Fatalf("U32 = %#x, %v", v, err)
	}
	if s, err := r.TinyStr(); err != nil || s != "hello" {
		t.Fatalf("TinyStr = %q, %v", s, err)
	}
	raw, err := r.Raw(3, "tail")
	if err != nil || !bytes.Equal(raw, []byte{1, 2, 3}) {
		t.Fatalf("Raw = %v, %v", raw, err)
	}
	if err := r.Done(); err != nil {
		t.Fatalf("Done failed: %v", err)
	}
}

func TestLittleEndian(t *testing.T) {
	w := NewWriter()
	w.U16(0x0102)
	w.U24(0x010203)
	w.U32(0x01020304)
	want := []byte{0x02, 0x01, 0x03, 0x02, 0x01, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("encoding = %x, want %x", w.Bytes(), want)
	}
}

func TestTruncated(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.U16(); err == nil {
		t.Fatal("U16 on one byte should fail")
	} else {
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Fatalf("error type %T, want *DecodeError", err)
		}
	}
}

func TestDoneLeftover(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.U8(); err != nil {
		t.Fatal(err)
	}
	if err := r.Done(); err == nil {
		t.Fatal("Done with one byte remaining should fail")
	}
}

func TestInvalidBool(t *testing.T) {
	r := NewReader([]byte{0x02})
	if _, err := r.Bool(); err == nil {
		t.Fatal("Bool byte 0x02 should fail")
	}
}

func TestTinyStrOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("TinyStr over 255 bytes should panic")
		}
	}()
	w := NewWriter()
	w.TinyStr(string(make([]byte, 300)))
}
