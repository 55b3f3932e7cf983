/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propvariant

import (
	"errors"
	"github.com/davecgh/go-spew/spew"
	"github.com/go-ole/go-ole"
	"reflect"
	"testing"
	"time"
	"unsafe"
)

// failingAllocator simulates an exhausted task allocator.
type failingAllocator struct{}

func (failingAllocator) Alloc(size int) (unsafe.Pointer, error) { return nil, ErrAllocation }
func (failingAllocator) Free(p unsafe.Pointer)                  {}

func TestPropVariant_FromString_Layout(t *testing.T) {

	// Prepare and run test cases
	alloc := NewHeapAllocator()
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"ascii", "plain ascii"},
		{"non-ascii", "Grüße aus Köln"},
		{"surrogates", "emoji \U0001F600 pair"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := &PropVariant{}
			if errEncode := pv.FromString(tt.value, alloc); errEncode != nil {
				t.Errorf("FromString() unexpected error: %s", errEncode)
				return
			}
			if pv.VT != ole.VT_LPWSTR {
				t.Errorf("FromString() set VT = %d, want VT_LPWSTR", pv.VT)
				return
			}

			// The allocation must hold the NUL terminator at exactly len*2 bytes, independent of pointer width
			codeUnits := len(stringToUTF16(tt.value)) - 1
			p := *(**uint16)(pv.data())
			allocated := unsafe.Slice(p, codeUnits+1)
			if allocated[codeUnits] != 0 {
				t.Errorf("FromString() allocation not NUL-terminated at byte %d", 2*codeUnits)
			}
			if got := utf16PtrToString(p); got != tt.value {
				t.Errorf("FromString() stored '%s', want '%s'", got, tt.value)
			}

			// The reserved words must stay zero
			base := unsafe.Pointer(&pv.VARIANT)
			for offset := 2; offset < 8; offset += 2 {
				if word := *(*uint16)(unsafe.Add(base, offset)); word != 0 {
					t.Errorf("FromString() left reserved word at offset %d set to %d", offset, word)
				}
			}
		})
	}
}

func TestPropVariant_FromString_AllocationFailure(t *testing.T) {
	pv := &PropVariant{}
	errEncode := pv.FromString("anything", failingAllocator{})
	if !errors.Is(errEncode, ErrAllocation) {
		t.Errorf("FromString() error = '%v', want ErrAllocation", errEncode)
	}

	// A failed encode must not leave a half populated variant with a dangling pointer
	if pv.VT != ole.VT_EMPTY || *(*uintptr)(pv.data()) != 0 {
		t.Errorf("FromString() left variant populated after failed allocation: VT = %d", pv.VT)
	}
}

func TestPropVariant_FromTime_RoundTrip(t *testing.T) {

	// Prepare and run test cases. FILETIME resolution is 100ns, so instants used here stick to that grid.
	tests := []struct {
		name  string
		value time.Time
	}{
		{"filetime-epoch", time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"unix-epoch", time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"recent", time.Date(2024, time.June, 15, 13, 37, 42, 123456700, time.UTC)},
		{"far-future", time.Date(9999, time.December, 31, 23, 59, 59, 999999900, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := &PropVariant{}
			pv.FromTime(tt.value)
			if pv.VT != ole.VT_FILETIME {
				t.Errorf("FromTime() set VT = %d, want VT_FILETIME", pv.VT)
				return
			}
			got, errDecode := pv.Value()
			if errDecode != nil {
				t.Errorf("Value() unexpected error: %s", errDecode)
				return
			}
			if !tt.value.Equal(got.(time.Time)) {
				t.Errorf("round trip drifted: got '%s', want '%s'", got, tt.value)
			}
		})
	}
}

func TestPropVariant_FromValue_RoundTrip(t *testing.T) {

	// Prepare and run test cases covering every supported scalar kind with zero, minimum and maximum magnitudes
	alloc := NewHeapAllocator()
	tests := []struct {
		name  string
		value interface{}
	}{
		{"nil", nil},
		{"bool-true", true},
		{"bool-false", false},
		{"i1-min", int8(-128)},
		{"i1-zero", int8(0)},
		{"i1-max", int8(127)},
		{"ui1-max", uint8(255)},
		{"i2-min", int16(-32768)},
		{"i2-max", int16(32767)},
		{"ui2-max", uint16(65535)},
		{"i4-min", int32(-2147483648)},
		{"i4-max", int32(2147483647)},
		{"ui4-max", uint32(4294967295)},
		{"i8-min", int64(-9223372036854775808)},
		{"i8-max", int64(9223372036854775807)},
		{"ui8-zero", uint64(0)},
		{"ui8-max", uint64(18446744073709551615)},
		{"r4", float32(-3.5)},
		{"r8", 6.02214076e23},
		{"string-empty", ""},
		{"string-ascii", "The quick brown fox"},
		{"string-non-ascii", "Grüße, 世界"},
		{"time", time.Date(2003, time.February, 1, 10, 20, 30, 0, time.UTC)},
		{"currency", Currency{Val: -98765}},
		{"decimal", Decimal{Scale: 4, Sign: 0, Hi32: 1, Lo64: 5}},
		{"guid", ole.NewGUID("{B725F130-47EF-101A-A5F1-02608C9EEBAC}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := &PropVariant{}
			if errEncode := pv.FromValue(tt.value, alloc); errEncode != nil {
				t.Errorf("FromValue() unexpected error: %s", errEncode)
				return
			}
			got, errDecode := pv.Value()
			if errDecode != nil {
				t.Errorf("Value() unexpected error: %s", errDecode)
				return
			}

			// Instants compare by Equal, everything else structurally
			if wantTime, isTime := tt.value.(time.Time); isTime {
				if !wantTime.Equal(got.(time.Time)) {
					t.Errorf("round trip drifted: got '%s', want '%s'", got, wantTime)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.value) {
				t.Errorf("round trip changed value: got %s, want %s", spew.Sdump(got), spew.Sdump(tt.value))
			}
		})
	}
}

func TestPropVariant_FromValue_Unsupported(t *testing.T) {

	// Untyped ints have no width-exact discriminator and must be rejected instead of guessed
	alloc := NewHeapAllocator()
	tests := []struct {
		name  string
		value interface{}
	}{
		{"bare-int", 7},
		{"bare-uint", uint(7)},
		{"slice", []int32{1, 2}},
		{"struct", struct{ A int }{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pv := &PropVariant{}
			errEncode := pv.FromValue(tt.value, alloc)
			if !errors.Is(errEncode, ErrUnsupportedType) {
				t.Errorf("FromValue() error = '%v', want ErrUnsupportedType", errEncode)
			}
		})
	}
}

func TestPropVariant_Clear(t *testing.T) {
	pv := inlineVariant(ole.VT_UI8, 0xFFFFFFFFFFFFFFFF)
	pv.Clear()
	if pv.VT != ole.VT_EMPTY {
		t.Errorf("Clear() left VT = %d, want VT_EMPTY", pv.VT)
	}
	if bits := *(*uint64)(pv.data()); bits != 0 {
		t.Errorf("Clear() left payload bits 0x%X, want 0", bits)
	}
}

func TestHeapAllocator_Live(t *testing.T) {
	alloc := NewHeapAllocator()
	p1, errAlloc1 := alloc.Alloc(16)
	p2, errAlloc2 := alloc.Alloc(32)
	if errAlloc1 != nil || errAlloc2 != nil {
		t.Errorf("Alloc() unexpected errors: '%v', '%v'", errAlloc1, errAlloc2)
		return
	}
	if alloc.Live() != 2 {
		t.Errorf("Live() = %d, want 2", alloc.Live())
	}
	alloc.Free(p1)
	alloc.Free(p2)
	if alloc.Live() != 0 {
		t.Errorf("Live() = %d, want 0", alloc.Live())
	}
	if _, errZero := alloc.Alloc(0); !errors.Is(errZero, ErrAllocation) {
		t.Errorf("Alloc(0) error = '%v', want ErrAllocation", errZero)
	}
}
