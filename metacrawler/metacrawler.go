/*
* WinPropStore, a Go library for reading and writing file metadata through the Windows property system.
*
* Copyright (c) the WinPropStore authors, 2022-2026.
*
* This work is licensed under the terms of the MIT license. For a copy, see the LICENSE file in the top-level
* directory or visit <https://opensource.org/licenses/MIT>.
*
 */

package metacrawler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/filemeta/winpropstore/utils"
)

// File describes a single crawled file together with the metadata read from it
type File struct {
	Path         string
	Name         string
	Extension    string // Without "."
	Mime         string
	Readable     bool
	Writable     bool
	Flags        string // Unix permission bits and special file flags, empty on Windows
	SizeKb       int64
	LastModified time.Time
	Depth        int
	IsSymlink    bool
	Properties   []string // Property system values formatted as "name: value"
}

type Result struct {
	FoldersReadable int
	FilesReadable   int
	FilesWritable   int
	Data            []*File
	Status          string // Final crawl status (success or graceful error). Should be stored along with the results.
	Exception       bool   // Indicates if something went wrong badly and results shall be discarded. This should never be
	// true, because all errors should be handled gracefully. Logging an error message should always precede setting
	// this flag! This flag may additionally come along with a message put into the Status attribute.
}

// Intermediate result containing the processed file to be returned and new tasks (unprocessed folders and files)
type processResult struct {
	isReadableDir bool  // Needed for counting how many folders were crawled (inaccessible ones don't count)
	data          *File // The actual result data for this file
	newTasks      []*task
}

// For every file or folder a task is created with attributes describing the object to be processed
type task struct {
	path     string
	isFolder bool // Identifies for what process this task is meant
	depth    int  // Depth of the resource below the crawl root
}

// The main crawler struct
type Crawler struct {
	logger                    utils.Logger
	crawlDepth                int
	excludedFolders           map[string]struct{} // lowercase list of folder names to exclude from crawling
	excludedExtensions        map[string]struct{} // lowercase list of file extensions without '.' to exclude from crawling
	excludedLastModifiedBelow time.Time
	excludedFileSizeBelow     int64
	onlyAccessibleFiles       bool      // Whether to only return files that are at least read or writable
	threads                   int       // Amount of goroutines processing files in parallel
	deadline                  time.Time // Time at which the crawler has to abort
}

func NewCrawler(
	logger utils.Logger,
	maxDepth int,
	excludedFolders map[string]struct{}, // values must be converted to lowercase first!
	excludedExtensions map[string]struct{}, // values must be converted to lowercase first!
	excludedLastModifiedBelow time.Time,
	excludedFileSizeBelow int64,
	onlyAccessibleFiles bool,
	threads int,
	deadline time.Time,
) *Crawler {

	// Make sure at least one crawler thread is set
	if threads <= 0 {
		threads = 1
	}
	return &Crawler{
		logger:                    logger,
		crawlDepth:                maxDepth,
		excludedFolders:           excludedFolders,
		excludedExtensions:        excludedExtensions,
		excludedLastModifiedBelow: excludedLastModifiedBelow,
		excludedFileSizeBelow:     excludedFileSizeBelow,
		onlyAccessibleFiles:       onlyAccessibleFiles,
		threads:                   threads,
		deadline:                  deadline,
	}
}

// Crawl walks the filesystem beginning at the given root path. For every element it discovers, a new processing
// task is generated, back-feeding the crawler.
func (c *Crawler) Crawl(root string) (res *Result) {

	// Recover potential panics to gracefully shut down the crawl
	defer func() {
		if r := recover(); r != nil {

			// Log exception with stacktrace
			c.logger.Errorf(fmt.Sprintf("Unexpected error: %s", r))

			// Build error status from error message and formatted stacktrace
			errMsg := fmt.Sprintf("%s%s", r, utils.StacktraceIndented("\t"))

			// Return result set indicating exception
			res = &Result{
				Status:    errMsg,
				Exception: true,
			}
		}
	}()

	// Initialize result data
	result := &Result{
		Status: utils.StatusCompleted,
	}

	// Check that root is set
	if root == "" {
		c.logger.Debugf("Invalid crawl root.")
		return result
	}

	// Check whether access is possible
	rootInfo, err := os.Lstat(root)
	if err != nil {
		if pErr, ok := err.(*os.PathError); ok {
			c.logger.Debugf("Could not get root info of '%s': %s", pErr.Path, pErr.Err)
		}
		return result
	}

	// Prepare OS for crawling
	errPrepare := prepareCrawling(c.logger)
	if errPrepare != nil {
		c.logger.Errorf("Error while preparing crawling: %s", errPrepare)
	} else {
		// Prepare OS cleanup
		defer cleanupCrawling()
	}

	// Log start of crawling
	c.logger.Debugf("Crawling root '%s'.", root)

	// Create first task to be processed
	rootTask := &task{
		path:     root,
		isFolder: rootInfo.IsDir(),
		depth:    0,
	}

	// Start crawling-loop at the root and get the result struct to be filled
	c.run(rootTask, result)

	// Check whether the crawl was ended due to the timeout
	if utils.DeadlineReached(c.deadline) {
		c.logger.Debugf("Metacrawler finished with timeout.")
		result.Status = utils.StatusDeadline
		result.Exception = false
		return result
	}

	// Return result
	c.logger.Debugf("Metacrawler finished.")
	return result
}

// run orchestrates the crawling by looping and starting new processes and receiving process results
func (c *Crawler) run(rootTask *task, result *Result) {

	// Initialize crawler process slots, counter and return channel
	var processCount = 0                             // Counting processed elements
	var processActive = 0                            // Counter required to decide if all goroutines have terminated
	var chThrottle = make(chan struct{}, c.threads)  // A channel instead of an integer will allow to wait via select
	var chProcessResults = make(chan *processResult) // Channel containing results returned by a crawler process
	var queue []*task

	// Create and append first task, which is the root object
	queue = append(queue, rootTask)

	// Define closure to launch a new goroutine if possible. Not blocking. Returns true if something could be launched.
	launchFunc := func() bool {
		if len(queue) > 0 {
			select {
			case chThrottle <- struct{}{}: // Launch goroutine for next queue item
				processActive++
				if queue[0].isFolder {
					go c.processFolder(queue[0], processCount, chProcessResults)
				} else {
					go c.processFile(queue[0], processCount, chProcessResults)
				}
				queue = queue[1:]
				processCount += 1
				return true
			default:
				return false
			}
		}
		return false
	}

	// Define closure to receive (blocking)
	receiveFunc := func() {
		procRes := <-chProcessResults
		// Release slot and decrease goroutine counter
		<-chThrottle
		processActive--

		if procRes.isReadableDir {
			result.FoldersReadable++
		}
		if procRes.newTasks != nil {
			queue = append(queue, procRes.newTasks...)
		}
		if procRes.data != nil {
			// Add file to crawl results
			result.Data = append(result.Data, procRes.data)
			if procRes.data.Readable {
				result.FilesReadable++
			}
			if procRes.data.Writable {
				result.FilesWritable++
			}
		}
	}

	// Manage crawling. Launch new tasks, listen for results and queue new elements until done or timeout
	for {

		// Do not continue feeding the crawler if the deadline is reached
		if utils.DeadlineReached(c.deadline) {
			break
		}

		// Terminate queue if empty and no more crawling goroutines active
		if len(queue) == 0 && processActive == 0 {
			break
		}

		// Launch goroutine for next element if possible
		if len(queue) > 0 && launchFunc() {
			continue // Try launching further element as long as possible
		}

		// Wait for data to be processed (blocking)
		receiveFunc()
	}

	// Wait for remaining goroutines to finish (relevant in case of timeout)
	for processActive > 0 {
		c.logger.Debugf("Waiting for remaining %d goroutines.", processActive)
		receiveFunc()
	}
}

// processFolder processes a folder, retrieving its contents. The folder is skipped, if the max depth is reached.
func (c *Crawler) processFolder(folderTask *task, processId int, chProcessResults chan<- *processResult) {

	// Wrap logger again with local tag to connect log messages of this goroutine
	processLogger := utils.NewTaggedLogger(c.logger, fmt.Sprintf("t%03d", processId))

	// Crawl depth corresponds to the fs level, 1 means content of the root folder, -1 all content.
	// It is ">=" instead of ">", because with ">" the content would have a greater depth than the crawl depth.
	if folderTask.depth >= c.crawlDepth && c.crawlDepth > -1 {
		chProcessResults <- &processResult{}
		return
	}

	// Get more info about folder, if not possible then abort
	info, errStat := os.Lstat(folderTask.path)
	if errStat != nil {
		pErr, ok := errStat.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			c.logger.Debugf("Could not get folder info of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// Check if the folder is excluded
	_, contained := c.excludedFolders[strings.ToLower(info.Name())]
	if contained && folderTask.depth > 0 {
		chProcessResults <- &processResult{}
		return
	}

	// Skip symlinks to folders to avoid cycles
	if info.Mode()&os.ModeSymlink != 0 {
		chProcessResults <- &processResult{}
		return
	}

	// Get all folders and files
	content, errDir := os.ReadDir(folderTask.path)
	if errDir != nil { // Log if an unexpected error occurred
		pErr, ok := errDir.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			processLogger.Debugf("Could not get folder content of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// Create new tasks to be returned
	var newTasks []*task
	for _, entry := range content {
		newTasks = append(newTasks, &task{
			isFolder: entry.IsDir(),
			path:     filepath.Join(folderTask.path, entry.Name()),
			depth:    folderTask.depth + 1,
		})
	}

	// Return results
	chProcessResults <- &processResult{
		isReadableDir: true,
		data:          nil,
		newTasks:      newTasks,
	}
}

// processFile checks if file is not excluded by some criteria and determines its attributes and properties
func (c *Crawler) processFile(fileTask *task, processId int, chProcessResults chan<- *processResult) {

	// Get more info about file, if not possible then abort
	info, errStat := os.Lstat(fileTask.path)
	if errStat != nil {
		pErr, ok := errStat.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			c.logger.Debugf("Could not get file info of '%s': %s", pErr.Path, pErr.Err)
		}
		chProcessResults <- &processResult{}
		return
	}

	// Create File struct with basic information
	file := &File{
		Path:         fileTask.path,
		Name:         info.Name(),
		Flags:        getUnixFlags(info.Mode()),
		SizeKb:       info.Size() / 1000,
		LastModified: info.ModTime(),
		Depth:        fileTask.depth,
		IsSymlink:    info.Mode()&os.ModeSymlink != 0,
	}

	// Check if file is excluded by size
	if file.SizeKb < c.excludedFileSizeBelow {
		chProcessResults <- &processResult{}
		return
	}

	// Check if file is excluded by modification date
	if file.LastModified.Before(c.excludedLastModifiedBelow) {
		chProcessResults <- &processResult{}
		return
	}

	// Check if file is excluded by file extension
	file.Extension = strings.ReplaceAll(filepath.Ext(file.Name), ".", "")
	_, contained := c.excludedExtensions[strings.ToLower(file.Extension)]
	if contained {
		chProcessResults <- &processResult{}
		return
	}

	// Wrap logger again with local tag to connect log messages of this goroutine
	processLogger := utils.NewTaggedLogger(c.logger, fmt.Sprintf("t%03d", processId))

	// Use a special routine for symlink files, since the usual routine would mostly follow the link
	if file.IsSymlink {
		determineSymlinkPermissions(file, processLogger)

		// If c.onlyAccessibleFiles = true, then only files which are readable or writable are desired
		if c.onlyAccessibleFiles && !file.Readable && !file.Writable {
			chProcessResults <- &processResult{}
			return
		}

		// Return symlink info
		chProcessResults <- &processResult{
			data:     file,
			newTasks: nil,
		}
		return
	}

	// Check read rights
	readable, errRead := accessFile(file.Path, os.O_RDONLY)
	if errRead != nil {
		c.logger.Debugf("Could not fully detect file permissions: %s", errRead)
	}
	file.Readable = readable

	// Check write rights
	writable, errWrite := accessFile(file.Path, os.O_WRONLY)
	if errWrite != nil {
		c.logger.Debugf("Could not fully detect file permissions: %s", errWrite)
	}
	file.Writable = writable

	// If c.onlyAccessibleFiles = true, then only files which are readable or writable are desired
	if c.onlyAccessibleFiles && !file.Readable && !file.Writable {
		chProcessResults <- &processResult{}
		return
	}

	// Get mime type
	mime, errMime := mimetype.DetectFile(file.Path)
	if errMime != nil {
		pErr, ok := errMime.(*os.PathError)
		if ok && !(errors.Is(pErr, os.ErrPermission) || pErr.Err.Error() == os.ErrPermission.Error()) {
			processLogger.Debugf("Could not detect the mime-type of '%s': %s", pErr.Path, pErr.Err)
		}
	}

	// According to the documentation this function will always return a valid mime struct, but let's be sure anyway.
	if mime != nil {
		file.Mime = mime.String()
	}

	// Read the file's property system values
	props, errProps := collectProperties(file.Path, processLogger)
	if errProps != nil {
		processLogger.Debugf("Property determination failed: %s [%s]", errProps, file.Path)
		file.Properties = []string{}
	} else {
		file.Properties = props
	}

	// Send task and return
	chProcessResults <- &processResult{
		data:     file,
		newTasks: nil,
	}
}

// accessFile detects and returns if a file could be opened with a given flag (eg. readable/writable). If an error
// (other than a permission error) occurred, it is returned.
func accessFile(path string, flag int) (opened bool, err error) {

	// Try to open the file
	file, errOpen := os.OpenFile(path, flag, 0644) // the perm attribute does not matter, since no file is created
	if errOpen != nil {

		// Try to cast to path error
		errPath, isPathError := errOpen.(*os.PathError)

		// Check if it is a permission denied error, if yes return that file could not be opened
		if isPathError && (errors.Is(errPath, os.ErrPermission) || errPath.Err.Error() == os.ErrPermission.Error()) {
			return false, nil

			// If it is another error, additionally return the error
		} else {
			return false, errOpen
		}
	}

	// If opening was successful, close the handle and return true
	_ = file.Close()

	// Return that file could be opened
	return true, nil
}
