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
	"golang.org/x/text/encoding/charmap"
	"unicode/utf16"
	"unsafe"
)

// utf16PtrToString reads a NUL-terminated UTF-16 string from out-of-line memory. The memory stays owned by the
// variant the pointer was read from, only the returned Go string is a copy.
func utf16PtrToString(p *uint16) string {
	if p == nil {
		return ""
	}

	// Determine the length by scanning for the NUL terminator
	n := 0
	for tmp := p; *tmp != 0; n++ {
		tmp = (*uint16)(unsafe.Add(unsafe.Pointer(tmp), 2))
	}

	// Decode the UTF-16 code units into a Go string
	return string(utf16.Decode(unsafe.Slice(p, n)))
}

// stringToUTF16 converts a Go string into NUL-terminated UTF-16 code units.
func stringToUTF16(s string) []uint16 {
	encoded := utf16.Encode([]rune(s))
	return append(encoded, 0)
}

// ansiPtrToString reads a NUL-terminated narrow string from out-of-line memory and decodes it with the
// Windows-1252 code page, which is what the property system uses for VT_LPSTR values on western systems.
func ansiPtrToString(p *byte) (string, error) {
	if p == nil {
		return "", nil
	}

	// Determine the length by scanning for the NUL terminator
	n := 0
	for tmp := p; *tmp != 0; n++ {
		tmp = (*byte)(unsafe.Add(unsafe.Pointer(tmp), 1))
	}
	if n == 0 {
		return "", nil
	}

	// Decode the code page bytes into a Go string
	decoded, errDecode := charmap.Windows1252.NewDecoder().Bytes(unsafe.Slice(p, n))
	if errDecode != nil {
		return "", errDecode
	}
	return string(decoded), nil
}
