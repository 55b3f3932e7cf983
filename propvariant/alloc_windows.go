package propvariant

import (
	"golang.org/x/sys/windows"
	"unsafe"
)

var (
	modOle32           = windows.NewLazySystemDLL("ole32.dll")
	procCoTaskMemAlloc = modOle32.NewProc("CoTaskMemAlloc")
	procCoTaskMemFree  = modOle32.NewProc("CoTaskMemFree")
)

// taskAllocator allocates through the COM task allocator, the convention the Windows shell expects for
// out-of-line PROPVARIANT payloads it is supposed to release itself.
type taskAllocator struct{}

// TaskAllocator returns the platform's default allocator for out-of-line payloads.
func TaskAllocator() Allocator {
	return taskAllocator{}
}

func (taskAllocator) Alloc(size int) (unsafe.Pointer, error) {
	if size <= 0 {
		return nil, ErrAllocation
	}
	r0, _, _ := procCoTaskMemAlloc.Call(uintptr(size))
	if r0 == 0 {
		return nil, ErrAllocation
	}
	return unsafe.Pointer(r0), nil
}

func (taskAllocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	_, _, _ = procCoTaskMemFree.Call(uintptr(p))
}
