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
	"fmt"
	"github.com/go-ole/go-ole"
	"unsafe"
)

// Value decodes the variant into a native Go value. Scalar kinds decode to their natural Go counterparts,
// vector kinds to slices preserving source order. The decode is read-only: out-of-line memory stays owned by
// whoever populated the variant, and decoding the same variant twice yields equal values both times.
//
// A discriminator without a defined conversion rule fails with ErrUnsupportedType. It never decodes to a nil
// placeholder, since that would be indistinguishable from a legitimately empty property (VT_EMPTY/VT_NULL are
// the only kinds that decode to nil without error).
func (pv *PropVariant) Value() (interface{}, error) {

	// Dispatch on the modifier bits first. Only the vector modifier has conversion rules; the array and
	// by-reference modifiers fail for every base kind.
	if pv.VT&(ole.VT_VECTOR|ole.VT_ARRAY|ole.VT_BYREF) != 0 {
		if pv.VT&(ole.VT_ARRAY|ole.VT_BYREF) != 0 {
			return nil, unsupported(pv.VT)
		}
		return pv.vectorValue()
	}

	return pv.scalarValue()
}

// scalarValue converts a variant without modifier bits.
func (pv *PropVariant) scalarValue() (interface{}, error) {
	switch pv.VT {
	case ole.VT_EMPTY, ole.VT_NULL, ole.VT_VOID:
		return nil, nil
	case ole.VT_I1:
		return *(*int8)(pv.data()), nil
	case ole.VT_UI1:
		return *(*uint8)(pv.data()), nil
	case ole.VT_I2:
		return *(*int16)(pv.data()), nil
	case ole.VT_UI2:
		return *(*uint16)(pv.data()), nil
	case ole.VT_I4, ole.VT_INT:
		return *(*int32)(pv.data()), nil
	case ole.VT_UI4, ole.VT_UINT:
		return *(*uint32)(pv.data()), nil
	case ole.VT_I8:
		return *(*int64)(pv.data()), nil
	case ole.VT_UI8:
		return *(*uint64)(pv.data()), nil
	case ole.VT_R4:
		return *(*float32)(pv.data()), nil
	case ole.VT_R8:
		return *(*float64)(pv.data()), nil
	case ole.VT_BOOL:
		return *(*int16)(pv.data()) != 0, nil
	case ole.VT_ERROR, ole.VT_HRESULT:
		return *(*int32)(pv.data()), nil
	case ole.VT_CY:
		return Currency{Val: *(*int64)(pv.data())}, nil
	case ole.VT_DECIMAL:
		return pv.readDecimal(), nil
	case ole.VT_DATE:
		return oleDateToTime(*(*float64)(pv.data())), nil
	case ole.VT_FILETIME:
		return filetimeToTime(*(*uint64)(pv.data())), nil
	case ole.VT_BSTR, ole.VT_LPWSTR:
		return utf16PtrToString(*(**uint16)(pv.data())), nil
	case ole.VT_LPSTR:
		return ansiPtrToString(*(**byte)(pv.data()))
	case ole.VT_CLSID:
		guid := *(**ole.GUID)(pv.data())
		if guid == nil {
			return nil, fmt.Errorf("%w: CLSID without payload", ErrUnsupportedType)
		}
		clone := *guid
		return &clone, nil
	default:
		return nil, unsupported(pv.VT)
	}
}

// vectorValue converts a variant with the vector modifier bit. The payload is a {count, pointer} pair; every
// element is read at its fixed width. Elements are reinterpreted bitwise, never narrowed arithmetically, so
// that stored bit patterns survive exactly (a 0xFFFF element of an unsigned 16 bit vector decodes to 65535,
// not -1). The returned slices are copies, detached from the source memory.
func (pv *PropVariant) vectorValue() (interface{}, error) {
	ca := pv.vector()
	n := int(ca.cElems)
	if n > 0 && ca.pElems == 0 {
		return nil, fmt.Errorf("%w: 0x%04x with %d elements but no element pointer", ErrUnsupportedType, uint16(pv.VT), n)
	}
	p := unsafe.Pointer(ca.pElems)

	switch pv.BaseType() {
	case ole.VT_I1:
		out := make([]int8, n)
		copy(out, unsafe.Slice((*int8)(p), n))
		return out, nil
	case ole.VT_UI1:
		out := make([]uint8, n)
		copy(out, unsafe.Slice((*uint8)(p), n))
		return out, nil
	case ole.VT_I2:
		out := make([]int16, n)
		copy(out, unsafe.Slice((*int16)(p), n))
		return out, nil
	case ole.VT_UI2:
		out := make([]uint16, n)
		copy(out, unsafe.Slice((*uint16)(p), n))
		return out, nil
	case ole.VT_I4:
		out := make([]int32, n)
		copy(out, unsafe.Slice((*int32)(p), n))
		return out, nil
	case ole.VT_UI4:
		out := make([]uint32, n)
		copy(out, unsafe.Slice((*uint32)(p), n))
		return out, nil
	case ole.VT_I8:
		out := make([]int64, n)
		copy(out, unsafe.Slice((*int64)(p), n))
		return out, nil
	case ole.VT_UI8:
		out := make([]uint64, n)
		copy(out, unsafe.Slice((*uint64)(p), n))
		return out, nil
	case ole.VT_R4:
		out := make([]float32, n)
		copy(out, unsafe.Slice((*float32)(p), n))
		return out, nil
	case ole.VT_R8:
		out := make([]float64, n)
		copy(out, unsafe.Slice((*float64)(p), n))
		return out, nil
	case ole.VT_LPWSTR:
		// String vectors hold pointer-sized elements, one out-of-line string each
		out := make([]string, n)
		for i, sp := range unsafe.Slice((**uint16)(p), n) {
			out[i] = utf16PtrToString(sp)
		}
		return out, nil
	case ole.VT_LPSTR:
		out := make([]string, n)
		for i, sp := range unsafe.Slice((**byte)(p), n) {
			element, errDecode := ansiPtrToString(sp)
			if errDecode != nil {
				return nil, fmt.Errorf("could not decode string vector element %d: %s", i, errDecode)
			}
			out[i] = element
		}
		return out, nil
	default:
		return nil, unsupported(pv.VT)
	}
}
