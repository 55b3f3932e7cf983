/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

// Package propertysystem maps property keys to human readable names. On Windows the lookup goes through the
// property description service of the shell; everywhere else (and for keys the service does not know) a table
// of well-known canonical names answers.
package propertysystem

import (
	"github.com/filemeta/winpropstore/propertystore"
)

// canonicalNames covers the property keys most commonly attached to documents and media files. The table is
// deliberately small; unknown keys fall back to their canonical "{fmtid} pid" form.
var canonicalNames = map[propertystore.PropertyKey]string{
	propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 2"):  "System.Title",
	propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 3"):  "System.Subject",
	propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 4"):  "System.Author",
	propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 5"):  "System.Keywords",
	propertystore.MustParseKey("{F29F85E0-4FF9-1068-AB91-08002B27B3D9} 6"):  "System.Comment",
	propertystore.MustParseKey("{B725F130-47EF-101A-A5F1-02608C9EEBAC} 10"): "System.ItemNameDisplay",
	propertystore.MustParseKey("{B725F130-47EF-101A-A5F1-02608C9EEBAC} 12"): "System.Size",
	propertystore.MustParseKey("{B725F130-47EF-101A-A5F1-02608C9EEBAC} 14"): "System.DateModified",
	propertystore.MustParseKey("{B725F130-47EF-101A-A5F1-02608C9EEBAC} 15"): "System.DateCreated",
	propertystore.MustParseKey("{56A3372E-CE9C-11D2-9F0E-006097C686F6} 2"):  "System.Music.Artist",
	propertystore.MustParseKey("{56A3372E-CE9C-11D2-9F0E-006097C686F6} 4"):  "System.Music.AlbumTitle",
	propertystore.MustParseKey("{56A3372E-CE9C-11D2-9F0E-006097C686F6} 7"):  "System.Music.TrackNumber",
	propertystore.MustParseKey("{56A3372E-CE9C-11D2-9F0E-006097C686F6} 11"): "System.Music.Genre",
	propertystore.MustParseKey("{64440490-4C8B-11D1-8B70-080036B11A03} 3"):  "System.Media.Duration",
	propertystore.MustParseKey("{64440492-4C8B-11D1-8B70-080036B11A03} 36"): "System.Media.Year",
}

// Describe returns the well-known canonical name of a property key, if the built-in table has one.
func Describe(key propertystore.PropertyKey) (string, bool) {
	name, known := canonicalNames[key]
	return name, known
}

// DisplayName returns the best available name for a property key: the property description service on Windows,
// the built-in table otherwise, and the canonical "{fmtid} pid" form as last resort.
func DisplayName(key propertystore.PropertyKey) string {
	if name, errName := nameFromSystem(key); errName == nil && name != "" {
		return name
	}
	if name, known := Describe(key); known {
		return name
	}
	return key.String()
}
