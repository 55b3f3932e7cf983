package propertysystem

import (
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/filemeta/winpropstore/propertystore"
)

var (
	modPropsys                   = syscall.NewLazyDLL("propsys.dll")
	procPSGetNameFromPropertyKey = modPropsys.NewProc("PSGetNameFromPropertyKey")
)

// nameFromSystem asks the shell's property description service for the canonical name of a key. The returned
// buffer is owned by the task allocator and released here.
func nameFromSystem(key propertystore.PropertyKey) (string, error) {

	var pszName *uint16
	hr, _, _ := procPSGetNameFromPropertyKey.Call(
		uintptr(unsafe.Pointer(&key)),
		uintptr(unsafe.Pointer(&pszName)),
	)
	if hr != 0 {
		return "", ole.NewError(hr)
	}
	if pszName == nil {
		return "", nil
	}

	// Copy the name before handing the buffer back to the allocator
	name := windows.UTF16PtrToString(pszName)
	windows.CoTaskMemFree(unsafe.Pointer(pszName))

	return name, nil
}
