package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scanner *log.Logger
	Server  *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if IMAGEDIVE_DEBUG environment variable is set
	if os.Getenv("IMAGEDIVE_DEBUG") == "" {
		Debug = log.New(io.Discard, "", 0)
		Scanner = log.New(io.Discard, "", 0)
		Server = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		// Fallback to stderr if we can't open the file
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scanner = log.New(os.Stderr, "[SCANNER] ", log.Ldate|log.Ltime)
		Server = log.New(os.Stderr, "[SERVER] ", log.Ldate|log.Ltime)
		return
	}

	Debug = log.New(debugFile, "", log.Lmicroseconds)
	Scanner = log.New(debugFile, "[scanner] ", log.Lmicroseconds)
	Server = log.New(debugFile, "[server] ", log.Lmicroseconds)
}

// SetOutput redirects all loggers, used by commands that log to the console
func SetOutput(w io.Writer) {
	Debug.SetOutput(w)
	Scanner.SetOutput(w)
	Server.SetOutput(w)
	Enabled = w != io.Discard
}
