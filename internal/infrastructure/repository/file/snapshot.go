// Package file implements the store contracts on top of flat JSON files.
// Every mutation rewrites the whole backing file; writes go through a
// temp file and os.Rename so a crash mid-write never leaves a truncated
// snapshot behind.
package file

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"reflect"
)

// loadSnapshot reads path into out, which must be a non-nil pointer.
// A missing or malformed file leaves out untouched, so the store starts
// empty for the session instead of crashing or keeping a half-decoded
// snapshot. Decoding goes through a scratch value because json.Unmarshal
// fills the target incrementally and may error partway through.
func loadSnapshot(path string, out any, logger *slog.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warn("Failed to read store file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	scratch := reflect.New(reflect.TypeOf(out).Elem())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		logger.Warn("Store file is corrupted, starting empty",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return
	}
	reflect.ValueOf(out).Elem().Set(scratch.Elem())
}

// saveSnapshot atomically rewrites path with the JSON encoding of v.
func saveSnapshot(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
