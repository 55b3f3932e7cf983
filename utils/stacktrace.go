package utils

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Takes the stacktrace from stack and formats it in a nicely indented way (starting with newline):
// 	Stacktrace:
//		| goroutine 42 [running]:
//		| github.com/filemeta/winpropstore/metacrawler.(*Crawler).processFile(0xc0006a89a0, 0xc001e39740, 0x0, ...)
//		| 	/workplace/go/src/winpropstore/metacrawler/metacrawler.go:334 +0x5c3
//		| github.com/filemeta/winpropstore/metacrawler.(*Crawler).run(0xc0006a89a0, 0xd18c2e28000, 0x0)
//		| 	/workplace/go/src/winpropstore/metacrawler/metacrawler.go:230 +0x1ca
//		| created by github.com/filemeta/winpropstore/metacrawler.(*Crawler).Crawl
//		| 	/workplace/go/src/winpropstore/metacrawler/metacrawler.go:101 +0x8ec
func StacktraceIndented(indent string) string {

	// Get stacktrace
	trace := strings.Trim(string(debug.Stack()), "\n")

	// Return stacktrace formatted with intents
	return fmt.Sprintf(
		"\n%sStacktrace:\n%s\t| %s",
		indent,
		indent,
		strings.Replace(trace, "\n", "\n\t\t| ", -1),
	)
}
