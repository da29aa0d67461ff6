package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// setupLogging points the standard logger at path, or discards output when
// path is empty so nothing reaches the tcell screen
func setupLogging(path string) (*log.Logger, *os.File, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return log.New(io.Discard, "", 0), nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return log.New(f, "", log.LstdFlags|log.Lmicroseconds), f, nil
}
