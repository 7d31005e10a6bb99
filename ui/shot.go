package ui

import (
	"fmt"
	"os"
	"time"
)

// saveShot writes a plain-text frame to a timestamped file in the current
// directory and returns its name.
func saveShot(frame string, now time.Time) (string, error) {
	path := fmt.Sprintf("shot-%s.txt", now.Format("20060102-150405"))
	if err := os.WriteFile(path, []byte(frame+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
