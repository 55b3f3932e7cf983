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

const (
	// Active states
	StatusRunning = "Running" // Crawl is in progress

	// Success states
	StatusCompleted = "Completed"               // Crawl ran through without significant issues
	StatusDeadline  = "Completed With Deadline" // Deadline (crawl timeout) reached
	StatusSkipped   = "Skipped"                 // Entry point could not be accessed or was excluded

	// Error states
	StatusFailed = "Failed" // Crawl crashed or vanished
)
