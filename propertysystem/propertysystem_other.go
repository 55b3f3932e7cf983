//go:build !windows

package propertysystem

import (
	"github.com/filemeta/winpropstore/propertystore"
)

// nameFromSystem has no property description service to ask outside of Windows.
func nameFromSystem(key propertystore.PropertyKey) (string, error) {
	return "", propertystore.ErrNotWindows
}
