//go:build !windows

package propvariant

var taskAllocator = NewHeapAllocator()

// TaskAllocator returns the platform's default allocator for out-of-line payloads. Outside of Windows there is
// no COM task allocator, so a process-wide Go heap allocator stands in. This keeps the codec and everything
// built on top of it testable on any OS.
func TaskAllocator() Allocator {
	return taskAllocator
}
