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
	"time"
	"unsafe"
)

// FromString encodes a VT_LPWSTR variant. The NUL-terminated UTF-16 copy of the value is allocated through the
// given allocator and referenced from the payload pointer slot; ownership of that allocation transfers to
// whoever the variant is handed to. The variant is cleared first, so a failed allocation leaves no dangling
// pointer behind, just an empty variant.
func (pv *PropVariant) FromString(value string, alloc Allocator) error {
	pv.Clear()

	// Allocate 2*(len+1) bytes for the code units plus the NUL terminator
	encoded := stringToUTF16(value)
	mem, errAlloc := alloc.Alloc(2 * len(encoded))
	if errAlloc != nil {
		return fmt.Errorf("could not allocate wide string payload: %w", errAlloc)
	}

	// Copy the code units into the out-of-line allocation
	copy(unsafe.Slice((*uint16)(mem), len(encoded)), encoded)

	pv.VT = ole.VT_LPWSTR
	*(*uintptr)(pv.data()) = uintptr(mem)
	return nil
}

// FromTime encodes a VT_FILETIME variant. The instant is stored inline as a 64 bit tick count since the
// FILETIME epoch, no allocation takes place.
func (pv *PropVariant) FromTime(value time.Time) {
	pv.Clear()
	pv.VT = ole.VT_FILETIME
	*(*uint64)(pv.data()) = timeToFiletime(value)
}

// FromValue encodes a native Go value, dispatching strings to FromString, instants to FromTime and every other
// supported shape to the generic inline scalar encoding. Exactly one of the three paths is taken.
func (pv *PropVariant) FromValue(value interface{}, alloc Allocator) error {
	switch v := value.(type) {
	case string:
		return pv.FromString(v, alloc)
	case time.Time:
		pv.FromTime(v)
		return nil
	default:
		return pv.fromScalar(value, alloc)
	}
}

// fromScalar is the generic encoding path for scalar shapes without bespoke handling. Sized integers are used
// deliberately: the discriminator taxonomy is width-exact, so an untyped Go int has no unambiguous mapping and
// is rejected rather than guessed.
func (pv *PropVariant) fromScalar(value interface{}, alloc Allocator) error {
	pv.Clear()
	switch v := value.(type) {
	case nil:
		pv.VT = ole.VT_EMPTY
	case bool:
		pv.VT = ole.VT_BOOL
		if v {
			*(*int16)(pv.data()) = -1 // VARIANT_TRUE
		}
	case int8:
		pv.VT = ole.VT_I1
		*(*int8)(pv.data()) = v
	case uint8:
		pv.VT = ole.VT_UI1
		*(*uint8)(pv.data()) = v
	case int16:
		pv.VT = ole.VT_I2
		*(*int16)(pv.data()) = v
	case uint16:
		pv.VT = ole.VT_UI2
		*(*uint16)(pv.data()) = v
	case int32:
		pv.VT = ole.VT_I4
		*(*int32)(pv.data()) = v
	case uint32:
		pv.VT = ole.VT_UI4
		*(*uint32)(pv.data()) = v
	case int64:
		pv.VT = ole.VT_I8
		*(*int64)(pv.data()) = v
	case uint64:
		pv.VT = ole.VT_UI8
		*(*uint64)(pv.data()) = v
	case float32:
		pv.VT = ole.VT_R4
		*(*float32)(pv.data()) = v
	case float64:
		pv.VT = ole.VT_R8
		*(*float64)(pv.data()) = v
	case Currency:
		pv.VT = ole.VT_CY
		*(*int64)(pv.data()) = v.Val
	case Decimal:
		pv.writeDecimal(v)
		pv.VT = ole.VT_DECIMAL
	case *ole.GUID:
		mem, errAlloc := alloc.Alloc(int(unsafe.Sizeof(ole.GUID{})))
		if errAlloc != nil {
			return fmt.Errorf("could not allocate CLSID payload: %w", errAlloc)
		}
		*(*ole.GUID)(mem) = *v
		pv.VT = ole.VT_CLSID
		*(*uintptr)(pv.data()) = uintptr(mem)
	default:
		return fmt.Errorf("%w: cannot encode value of type %T", ErrUnsupportedType, value)
	}
	return nil
}
