/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package propertystore

import (
	"errors"
	"fmt"
	"github.com/filemeta/winpropstore/propvariant"
	"github.com/filemeta/winpropstore/utils"
	"github.com/go-ole/go-ole"
	"syscall"
)

// Initialize prepares the COM library for property store access on this thread. Must be called once before the
// first Open. Returns nil if the library was already initialized.
func Initialize(logger utils.Logger) error {

	// Initialize the COM library, which is needed for getting file properties with the property store
	errComIni := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED)

	// No error means success. In COM, error code 1 means success but with a problem, in this case that the COM
	// library was already initialized. https://docs.microsoft.com/en-us/windows/win32/learnwin32/error-handling-in-com
	if errComIni != nil {
		oleErr, ok := errComIni.(*ole.OleError) // Convert to OleError for better handling
		if !ok {
			return errComIni
		}
		if oleErr.Code() == 1 {
			logger.Debugf("The COM library is already initialized on this thread.")
			return nil
		}
		return oleErr
	}

	// Return nil as everything went fine
	return nil
}

// Uninitialize reverses Initialize.
func Uninitialize() {
	ole.CoUninitialize()
}

// Store is an open per-file property collection.
type Store struct {
	ps     *IPropertyStore
	alloc  propvariant.Allocator
	logger utils.Logger
}

// Open opens the property store of the file at the given path. Use GpsReadWrite to be able to set values and
// commit them. The returned store has to be released with Close.
func Open(logger utils.Logger, path string, flags uint32) (*Store, error) {

	// Convert path string to a UTF16 pointer for the syscall
	pathUTF16, errUTF16 := syscall.UTF16PtrFromString(path)
	if errUTF16 != nil {
		return nil, fmt.Errorf("could not convert path to utf16-pointer: %s", errUTF16)
	}

	// Get the property store object of the file
	var ps *IPropertyStore
	errGet := SHGetPropertyStoreFromParsingName(pathUTF16, nil, flags, IPropertyStoreGuid, &ps)
	if errGet != nil {
		return nil, fmt.Errorf("could not get property store: %s", errGet)
	}
	if ps == nil {
		return nil, fmt.Errorf("shell returned a nil property store")
	}

	return &Store{
		ps:     ps,
		alloc:  propvariant.TaskAllocator(),
		logger: logger,
	}, nil
}

// Count returns the number of properties attached to the file.
func (s *Store) Count() (uint32, error) {
	var count uint32
	if errCount := psGetCount(s.ps, &count); errCount != nil {
		return 0, fmt.Errorf("could not get property count: %s", errCount)
	}
	return count, nil
}

// KeyAt returns the property key at the given index.
func (s *Store) KeyAt(index uint32) (PropertyKey, error) {
	var key PropertyKey
	if errAt := psGetAt(s.ps, index, &key); errAt != nil {
		return PropertyKey{}, fmt.Errorf("could not get property key %d: %s", index, errAt)
	}
	return key, nil
}

// Value reads and decodes the value of a single property. The PROPVARIANT received from the shell is released
// again after decoding, the returned Go value does not reference it.
func (s *Store) Value(key PropertyKey) (interface{}, error) {

	// Get the raw property value
	var pv propvariant.PropVariant
	if errGet := psGetValue(s.ps, &key, &pv); errGet != nil {
		return nil, fmt.Errorf("could not get value of %s: %s", key, errGet)
	}

	// Release the variant's out-of-line payload after decoding
	defer propVariantClear(&pv)

	// Convert the value to a Go typed value
	return pv.Value()
}

// SetValue encodes a Go value and writes it to the property. The change only lands in the file after Commit.
func (s *Store) SetValue(key PropertyKey, value interface{}) error {

	// Encode the value through the task allocator, the convention the shell releases with
	var pv propvariant.PropVariant
	if errEncode := pv.FromValue(value, s.alloc); errEncode != nil {
		return fmt.Errorf("could not encode value for %s: %s", key, errEncode)
	}

	// SetValue copies the variant, so the encoded payload stays ours and has to be released again
	defer propVariantClear(&pv)

	if errSet := psSetValue(s.ps, &key, &pv); errSet != nil {
		return fmt.Errorf("could not set value of %s: %s", key, errSet)
	}
	return nil
}

// Commit writes pending property changes back to the file.
func (s *Store) Commit() error {
	if errCommit := psCommit(s.ps); errCommit != nil {
		return fmt.Errorf("could not commit property changes: %s", errCommit)
	}
	return nil
}

// Close releases the underlying COM object.
func (s *Store) Close() {
	s.ps.Release()
}

// All enumerates every property of the file. Properties with discriminators the codec does not support are
// skipped and logged, enumeration continues with the remaining keys.
func (s *Store) All() ([]Property, error) {

	// Get the number of properties to iterate
	count, errCount := s.Count()
	if errCount != nil {
		return nil, errCount
	}

	// Read and decode all properties
	properties := make([]Property, 0, count)
	for i := uint32(0); i < count; i++ {
		key, errKey := s.KeyAt(i)
		if errKey != nil {
			s.logger.Debugf("Could not get property key %d: %s", i, errKey)
			continue
		}
		value, errValue := s.Value(key)
		if errValue != nil {
			if errors.Is(errValue, propvariant.ErrUnsupportedType) {
				s.logger.Debugf("Skipping property %s: %s", key, errValue)
				continue
			}
			return nil, errValue
		}
		properties = append(properties, Property{Key: key, Value: value})
	}

	// Return enumerated properties
	return properties, nil
}
