package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// RollingFile is an io.Writer that rolls the log file over once it grows past
// a size limit, keeping a fixed number of numbered backups.
type RollingFile struct {
	path       string
	limit      int64 // bytes
	maxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

// Setup points the standard logger at both stdout and a rolling file.
// On any file problem it degrades to stdout-only rather than failing startup.
func Setup(path string, maxSizeMB int64, maxBackups int) {
	rf := &RollingFile{
		path:       path,
		limit:      maxSizeMB * 1024 * 1024,
		maxBackups: maxBackups,
	}

	if err := rf.open(); err != nil {
		log.Printf("Failed to open log file %s, using stdout only: %v", path, err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stdout, rf))
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// open attaches to the existing log file, or creates a fresh one.
func (r *RollingFile) open() error {
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	r.file = f
	r.size = info.Size()
	return nil
}

// Write satisfies io.Writer, rolling over first when the line would push the
// file past its limit. A failed rollover never costs the log line itself.
func (r *RollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		if err := r.open(); err != nil {
			return 0, err
		}
	}

	if r.size+int64(len(p)) > r.limit {
		if err := r.roll(); err != nil {
			fmt.Fprintf(os.Stderr, "log rollover failed: %v\n", err)
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

// roll shifts backups up by one (agent.log.1 -> agent.log.2, ...), moves the
// live file to .1 and starts a new one. The oldest backup falls off the end.
func (r *RollingFile) roll() error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}

	for i := r.maxBackups - 1; i >= 1; i-- {
		from := fmt.Sprintf("%s.%d", r.path, i)
		if _, err := os.Stat(from); err == nil {
			os.Rename(from, fmt.Sprintf("%s.%d", r.path, i+1))
		}
	}
	if _, err := os.Stat(r.path); err == nil {
		os.Rename(r.path, r.path+".1")
	}

	r.size = 0
	return r.open()
}
