/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package _test

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Settings necessary for some unit tests
var settings *Settings
var settingsErr error // Indicates if settings initialization failed
var once sync.Once

// Settings holds all necessary unittest settings
type Settings struct {
	PathTmpDir  string // Path to folder used by unit tests to create temporary files and test output
	PathDataDir string // Path to sample data used by unit tests
}

func GetSettings() (*Settings, error) {

	// Initialize unit test settings if not done yet
	once.Do(func() {

		// Get absolute path to the _test folder
		_, filename, _, _ := runtime.Caller(0)
		workingDir := filepath.Dir(filename)

		// Create a new instance of the unit test settings
		settings = &Settings{
			PathTmpDir:  filepath.Join(workingDir, "tmp"),
			PathDataDir: filepath.Join(workingDir, "data"),
		}

		// Make sure the tmp folder exists
		errMkdir := os.MkdirAll(settings.PathTmpDir, 0755)
		if errMkdir != nil {
			settingsErr = fmt.Errorf("could not create tmp folder: %s", errMkdir)
			return
		}
	})

	// Return previously initialized unit test settings
	return settings, settingsErr
}
