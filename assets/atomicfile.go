package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// atomicWriteFile writes data to path by first writing to path+".tmp" in
// the same directory, then renaming over the destination — the rename is
// atomic on the same filesystem, so a crash mid-write never leaves a
// truncated dump file behind. This reproduces the teacher's
// AtomicWriteJSON/ReadJSON config-file pattern, generalized to arbitrary
// bytes so the same helper serves both config JSON and dumped images.
func atomicWriteFile(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// atomicWriteJSON marshals v and writes it atomically, matching the
// teacher's ui/storage.AtomicWriteJSON.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(path, data)
}

// readJSON reads and unmarshals path into v, matching the teacher's
// ui/storage.ReadJSON.
func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
