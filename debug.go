package main

import (
	"log"
	"os"
)

// debugEnabled turns on verbose cache and input logging. It is set from the
// COMICVIEW_DEBUG environment variable or the --debug flag.
var debugEnabled = os.Getenv("COMICVIEW_DEBUG") != ""

func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}
