/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package utils

import (
	"strings"
)

// UniqueStrings gets rid of redundant elements
func UniqueStrings(elements []string) []string {

	// Use map to record duplicates as we find them.
	encountered := map[string]struct{}{}
	var result []string

	// Iterate elements and add them to the new slice if they were not seen before
	for _, element := range elements {
		_, contained := encountered[element]
		if !contained {
			encountered[element] = struct{}{}
			result = append(result, element)
		}
	}

	// Return the new slice.
	return result
}

// TrimToLower normalizes a slice of strings by trimming whitespace and converting all characters to lower case
func TrimToLower(slice []string) []string {
	result := make([]string, 0, len(slice))
	for _, element := range slice {
		result = append(result, strings.ToLower(strings.TrimSpace(element)))
	}
	return result
}

// LookupMap converts a slice of strings into a lookup map with lowercase keys. Useful for exclusion lists that
// need to be checked for every crawled file or folder.
func LookupMap(elements []string) map[string]struct{} {
	lookup := make(map[string]struct{}, len(elements))
	for _, element := range TrimToLower(elements) {
		lookup[element] = struct{}{}
	}
	return lookup
}
