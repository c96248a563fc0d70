package parsers

import (
	"strings"
	"time"
)

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

// replaceExt swaps path's extension for ext, used when a parser's trace
// file is named after the object it timed rather than the source it
// compiled (e.g. main.txt describing main.cpp). Only the last extension is
// replaced.
func replaceExt(path, ext string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return path + ext
	}
	return path[:idx] + ext
}
