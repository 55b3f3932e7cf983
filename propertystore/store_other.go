//go:build !windows

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
	"github.com/filemeta/winpropstore/utils"
)

// Initialize is a no-op outside of Windows, Open will refuse to work anyway.
func Initialize(logger utils.Logger) error {
	return nil
}

// Uninitialize is a no-op outside of Windows.
func Uninitialize() {
}

// Store is an open per-file property collection. Only available on Windows.
type Store struct{}

// Open fails outside of Windows: there is no shell property system to talk to. Key parsing, the codec and the
// OOXML fallback of the crawler remain available on every OS.
func Open(logger utils.Logger, path string, flags uint32) (*Store, error) {
	return nil, ErrNotWindows
}

func (s *Store) Count() (uint32, error) {
	return 0, ErrNotWindows
}

func (s *Store) KeyAt(index uint32) (PropertyKey, error) {
	return PropertyKey{}, ErrNotWindows
}

func (s *Store) Value(key PropertyKey) (interface{}, error) {
	return nil, ErrNotWindows
}

func (s *Store) SetValue(key PropertyKey, value interface{}) error {
	return ErrNotWindows
}

func (s *Store) Commit() error {
	return ErrNotWindows
}

func (s *Store) Close() {
}

func (s *Store) All() ([]Property, error) {
	return nil, ErrNotWindows
}
