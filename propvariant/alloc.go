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
	"sync"
	"unsafe"
)

// Allocator provides the out-of-line memory referenced by pointer payloads. Encoding allocates strings and
// arrays through it, so that the consumer of the populated variant can release them with the matching free
// routine. On Windows this must be the COM task allocator, because the shell releases property values with
// CoTaskMemFree. Ownership of every allocation transfers to whoever the populated variant is handed to; the
// codec itself never frees memory it did not allocate and never frees after handing off.
type Allocator interface {
	Alloc(size int) (unsafe.Pointer, error)
	Free(p unsafe.Pointer)
}

// HeapAllocator serves allocations from the Go heap. It keeps every block reachable in a registry until it is
// freed, so that raw pointers stored inside a variant stay valid while the garbage collector runs. It backs
// the task allocator on non-Windows targets and is the allocator of choice for tests.
type HeapAllocator struct {
	mu     sync.Mutex
	blocks map[uintptr][]byte
}

func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{
		blocks: make(map[uintptr][]byte),
	}
}

func (a *HeapAllocator) Alloc(size int) (unsafe.Pointer, error) {
	if size <= 0 {
		return nil, ErrAllocation
	}
	block := make([]byte, size)
	p := unsafe.Pointer(&block[0])

	// Register the block to keep it alive until Free is called
	a.mu.Lock()
	a.blocks[uintptr(p)] = block
	a.mu.Unlock()
	return p, nil
}

func (a *HeapAllocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	a.mu.Lock()
	delete(a.blocks, uintptr(p))
	a.mu.Unlock()
}

// Live returns the number of allocations that have not been freed yet. Intended for leak checks in tests.
func (a *HeapAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.blocks)
}
