package metacrawler

import (
	"fmt"
	"os"
	"syscall"

	"github.com/filemeta/winpropstore/propertystore"
	"github.com/filemeta/winpropstore/propertysystem"
	"github.com/filemeta/winpropstore/utils"
)

// prepareCrawling prepares the OS to crawl files
func prepareCrawling(logger utils.Logger) error {

	// Initialize the COM library, which is needed for reading file properties through the property store
	return propertystore.Initialize(logger)
}

// cleanupCrawling restores preparations of the OS that were required to crawl files
func cleanupCrawling() {

	// Un-initialize the COM library
	propertystore.Uninitialize()
}

// collectProperties reads all property system values of a file and formats them as "name: value". Custom OOXML
// properties the store does not report are supplemented from the file's docProps/custom.xml.
func collectProperties(filepath string, logger utils.Logger) ([]string, error) {

	// Open the property store of the file
	store, errOpen := propertystore.Open(logger, filepath, propertystore.GpsDefault)
	if errOpen != nil {
		return nil, fmt.Errorf("could not open property store: %s", errOpen)
	}
	defer store.Close()

	// Enumerate all properties the store can decode
	properties, errAll := store.All()
	if errAll != nil {
		return nil, errAll
	}

	// Format properties with the best available name
	var result []string
	seen := &OOXMLProperties{}
	for _, property := range properties {
		name := propertysystem.DisplayName(property.Key)
		result = append(result, fmt.Sprintf("%s: %v", name, property.Value))
		seen.Properties = append(seen.Properties, OOXMLProperty{
			Fmtid: property.Key.GUID.String(),
			Pid:   fmt.Sprintf("%d", property.Key.PID),
			Name:  name,
		})
	}

	// Supplement custom OOXML properties the store did not report
	customProps, errCustom := getOOXMLProperties(filepath, logger)
	if errCustom != nil {
		logger.Debugf("Could not read OOXML properties of '%s': %s", filepath, errCustom)
		return result, nil
	}
	for _, prop := range customProps.Properties {
		if seen.containsSimilar(prop) {
			continue
		}
		result = append(result, fmt.Sprintf("%s: %s", prop.Name, prop.ValStr))
	}

	return result, nil
}

func determineSymlinkPermissions(symlinkInfo *File, logger utils.Logger) {

	// Determine read permission
	readable, errRead := accessSymlink(symlinkInfo.Path, syscall.GENERIC_READ)
	if errRead != nil {
		logger.Debugf("Could not detect file permissions of %s: %s", symlinkInfo.Path, errRead)
	}
	symlinkInfo.Readable = readable

	// Determine write permission
	writable, errWrite := accessSymlink(symlinkInfo.Path, syscall.GENERIC_WRITE)
	if errWrite != nil {
		logger.Debugf("Could not detect file permissions of %s: %s", symlinkInfo.Path, errWrite)
	}
	symlinkInfo.Writable = writable
}

// accessSymlink detects and returns if a symlink could be opened with a given access flag, (eg. syscall.GENERIC_READ).
// We need to use the syscall CreateFile instead of Golang's OpenFile() since we need to specify to not follow symlinks.
func accessSymlink(path string, accessFlag uint32) (access bool, err error) {

	// Convert path to a UTF16 string
	pathUTF16, errUTF16 := syscall.UTF16PtrFromString(path)
	if errUTF16 != nil {
		return false, errUTF16
	}

	// Specify that file can be used by other processes while we open it
	sharemode := uint32(syscall.FILE_SHARE_READ | syscall.FILE_SHARE_WRITE)

	// Use FILE_FLAG_BACKUP_SEMANTICS to be able to open symlinks to folders.
	// Use FILE_FLAG_OPEN_REPARSE_POINT, otherwise CreateFile will follow symlink.
	attrs := uint32(syscall.FILE_FLAG_BACKUP_SEMANTICS | syscall.FILE_FLAG_OPEN_REPARSE_POINT)

	// Try to open file with the specified access flag
	fileHandle, errOpen := syscall.CreateFile(
		pathUTF16, accessFlag, sharemode, nil, syscall.OPEN_EXISTING, attrs, 0)
	if errOpen != nil {
		if errOpen == syscall.ERROR_ACCESS_DENIED {
			return false, nil
		} else {
			return false, errOpen
		}
	}

	// If opening was successful, close the handle and return true
	errClose := syscall.CloseHandle(fileHandle)
	if errClose != nil {
		return true, err // return additionally the error of the failed file handle closing
	}

	// Return flag that file could be accessed
	return true, nil
}

// getUnixFlags extracts unix file permissions of the fileMode, which are not existing on Windows
func getUnixFlags(fm os.FileMode) string {
	return ""
}
