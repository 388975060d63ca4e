package util

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// TempSuffix marks output files that are still being written.
const TempSuffix = ".part"

// pending holds the temp files this process is writing right now. The
// interrupt handler removes only these.
var pending = struct {
	sync.Mutex
	paths map[string]struct{}
}{paths: map[string]struct{}{}}

func trackTemp(path string) {
	pending.Lock()
	pending.paths[path] = struct{}{}
	pending.Unlock()
}

func untrackTemp(path string) {
	pending.Lock()
	delete(pending.paths, path)
	pending.Unlock()
}

// PendingTemps lists the temp files currently being written.
func PendingTemps() []string {
	pending.Lock()
	defer pending.Unlock()

	out := make([]string, 0, len(pending.paths))
	for p := range pending.paths {
		out = append(out, p)
	}
	return out
}

// WriteFileAtomic writes data to a sibling temp file and renames it over path,
// so path either holds the complete output or is left untouched.
func WriteFileAtomic(path string, data []byte) error {
	return WriteAtomic(path, func(tmp string) error {
		return os.WriteFile(tmp, data, 0644)
	})
}

// WriteAtomic hands write a temp path next to path and renames it into place
// once write succeeds.
func WriteAtomic(path string, write func(tmp string) error) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output folder: %w", err)
		}
	}

	tmp := path + TempSuffix
	trackTemp(tmp)
	defer untrackTemp(tmp)

	if err := write(tmp); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	return nil
}
