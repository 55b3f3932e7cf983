/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propertysystem

import (
	"testing"

	"github.com/filemeta/winpropstore/propertystore"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantName  string
		wantKnown bool
	}{
		{"title", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2", "System.Title", true},
		{"author", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 4", "System.Author", true},
		{"display-name", "{B725F130-47EF-101A-A5F1-02608C9EEBAC} 10", "System.ItemNameDisplay", true},
		{"music-artist", "{56A3372E-CE9C-11D2-9F0E-006097C686F6} 2", "System.Music.Artist", true},
		{"unknown-pid", "{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 999", "", false},
		{"unknown-fmtid", "{00000000-0000-0000-0000-000000000000} 2", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, errKey := propertystore.ParseKey(tt.key)
			if errKey != nil {
				t.Errorf("Describe() could not parse key '%s': %s", tt.key, errKey)
				return
			}
			name, known := Describe(key)
			if name != tt.wantName || known != tt.wantKnown {
				t.Errorf("Describe() = '%s', %v, want '%s', %v", name, known, tt.wantName, tt.wantKnown)
			}
		})
	}
}

func TestDisplayName_Fallback(t *testing.T) {

	// A key outside the built-in table falls back to its canonical string form
	key := propertystore.MustParseKey("{11111111-2222-3333-4444-555555555555} 7")
	if got := DisplayName(key); got != key.String() {
		t.Errorf("DisplayName() = '%s', want '%s'", got, key.String())
	}

	// A well-known key resolves to a readable name on any platform. The property description service answers
	// first on Windows and agrees with the table on this key.
	title := propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2")
	if got := DisplayName(title); got != "System.Title" {
		t.Errorf("DisplayName() = '%s', want 'System.Title'", got)
	}
}
