package persistence

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// CoordLog appends (utc_timestamp, ra, dec) lines to an on-disk log
// whenever the telescope's solved position changes, if logging is
// enabled. It owns its own file handle for the process lifetime rather
// than reopening on every write.
type CoordLog struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenCoordLog opens path for appending, creating it if necessary.
func OpenCoordLog(path string) (*CoordLog, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open coord log: %w", err)
	}
	return &CoordLog{f: f, path: path}, nil
}

// Append writes one (utc_timestamp, ra, dec) line.
func (c *CoordLog) Append(t time.Time, ra, dec float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	line := fmt.Sprintf("%s %.6f %.6f\n", t.UTC().Format(time.RFC3339), ra, dec)
	_, err := c.f.WriteString(line)
	return err
}

// Close closes the underlying file.
func (c *CoordLog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.f.Close()
}
