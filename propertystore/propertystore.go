/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package propertystore wraps the per-file property collection of the Windows shell (IPropertyStore). It opens
// the store of a file, enumerates its keys and reads, writes and commits property values, converting between
// PROPVARIANT payloads and Go values through the propvariant codec. Only the key and value types compile on
// every OS; opening a store requires Windows.
package propertystore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"github.com/go-ole/go-ole"
	"github.com/google/uuid"
	"strings"
)

var (
	// ErrNotWindows is returned when a property store is opened on an OS without a shell property system.
	ErrNotWindows = errors.New("property stores require Windows")
)

// Flags for opening a property store, matching the GETPROPERTYSTOREFLAGS values used by
// SHGetPropertyStoreFromParsingName.
const (
	GpsDefault   = 0x0
	GpsReadWrite = 0x2
)

// PropertyKey identifies a single property: a format GUID naming the property schema plus a property id within
// it. The field layout matches the native PROPERTYKEY structure, so pointers to it can go straight into
// property system calls.
type PropertyKey struct {
	ole.GUID
	PID uint32
}

// ParseKey parses the canonical string form of a property key: a braced format GUID followed by the decimal
// property id, separated by a space or comma. Example: "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2".
func ParseKey(value string) (PropertyKey, error) {

	// Split into fmtid and pid part
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", " ")
	parts := strings.Fields(normalized)
	if len(parts) != 2 {
		return PropertyKey{}, fmt.Errorf("invalid property key '%s'", value)
	}

	// Parse the format GUID
	fmtid, errParse := uuid.Parse(parts[0])
	if errParse != nil {
		return PropertyKey{}, fmt.Errorf("invalid property key fmtid '%s': %s", parts[0], errParse)
	}

	// Parse the property id
	var pid uint32
	if _, errScan := fmt.Sscanf(parts[1], "%d", &pid); errScan != nil {
		return PropertyKey{}, fmt.Errorf("invalid property key pid '%s': %s", parts[1], errScan)
	}

	return PropertyKey{
		GUID: guidFromUUID(fmtid),
		PID:  pid,
	}, nil
}

// MustParseKey is ParseKey for compile time constant keys. It panics on invalid input.
func MustParseKey(value string) PropertyKey {
	key, errParse := ParseKey(value)
	if errParse != nil {
		panic(errParse)
	}
	return key
}

// String returns the canonical form accepted by ParseKey.
func (k PropertyKey) String() string {
	return fmt.Sprintf("%s %d", k.GUID.String(), k.PID)
}

// guidFromUUID converts the big-endian RFC 4122 byte order of an uuid into the native field order of a GUID.
func guidFromUUID(u uuid.UUID) ole.GUID {
	guid := ole.GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(guid.Data4[:], u[8:16])
	return guid
}

// Property is one enumerated entry of a store: its key and the decoded value.
type Property struct {
	Key   PropertyKey
	Value interface{}
}
