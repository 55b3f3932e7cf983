/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package propvariant converts between the PROPVARIANT structure of the Windows property system and native Go
// values. The PROPVARIANT is a tagged union: a 16 bit discriminator selects one of roughly thirty scalar kinds,
// and three independent modifier bits (vector, array, by-reference) change how the payload region has to be
// interpreted. The payload region starts at byte offset 8 and holds either an inline scalar, a pointer to
// out-of-line data, or a {count, pointer} pair for vector kinds. The pointer slot moves with the target's
// pointer width, which is why the structure is accessed through typed overlays instead of hardcoded offsets.
//
// The codec is stateless. Every conversion is a single pass over one PropVariant, and distinct PropVariants can
// be processed concurrently. The same PropVariant must not be encoded and decoded at the same time.
package propvariant

import (
	"errors"
	"fmt"
	"github.com/go-ole/go-ole"
	"unsafe"
)

var (
	// ErrUnsupportedType is returned when a PROPVARIANT carries a discriminator with no defined conversion rule.
	// This includes the array (0x2000) and by-reference (0x4000) modifier bits as well as vector element kinds
	// outside the supported set. Decoding never falls back to guessing a compatible type, because property
	// values are frequently round-tripped and written back; silently wrong data would be worse than a failure.
	ErrUnsupportedType = errors.New("unsupported PROPVARIANT type")

	// ErrAllocation is returned when the task allocator could not provide memory for an out-of-line payload
	// during encoding. The variant is left cleared in that case, it never keeps a dangling pointer.
	ErrAllocation = errors.New("task allocator could not provide memory")
)

// PropVariant is the Go representation of the PROPVARIANT structure. The embedded go-ole VARIANT supplies the
// correct memory layout for the compile target: discriminator at offset 0, three reserved words, and the payload
// union starting at offset 8 (padded to 16 bytes on 64 bit targets).
type PropVariant struct {
	ole.VARIANT
}

// caHeader is the counted-array payload of a vector variant. Go's natural field alignment places the element
// pointer at payload offset 4 on 32 bit targets and offset 8 on 64 bit targets, matching the platform layouts
// of the CA* structures in propidl.h.
type caHeader struct {
	cElems uint32
	pElems uintptr
}

// Clear resets the variant to VT_EMPTY with every payload byte zeroed, so that reserved fields and unused union
// bytes are deterministic before an encode operation. Clear does not release out-of-line allocations; those are
// owned by whoever received the populated variant.
func (pv *PropVariant) Clear() {
	pv.VARIANT = ole.VARIANT{}
}

// BaseType returns the discriminator with all modifier bits masked off.
func (pv *PropVariant) BaseType() ole.VT {
	return pv.VT & ole.VT_TYPEMASK
}

// IsVector reports whether the vector modifier bit is set.
func (pv *PropVariant) IsVector() bool {
	return pv.VT&ole.VT_VECTOR != 0
}

// data returns the start of the payload union.
func (pv *PropVariant) data() unsafe.Pointer {
	return unsafe.Pointer(&pv.Val)
}

// vector returns the {count, pointer} overlay of the payload union.
func (pv *PropVariant) vector() *caHeader {
	return (*caHeader)(unsafe.Pointer(&pv.Val))
}

func unsupported(vt ole.VT) error {
	return fmt.Errorf("%w: 0x%04x", ErrUnsupportedType, uint16(vt))
}
