// Package jsonfile loads and atomically saves JSON documents on disk
package jsonfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	perr "grocer/internal/platform/errors"
)

// Load decodes the file at path into v.
// A missing or blank file leaves v untouched and reports found=false
func Load(path string, v any) (found bool, err error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, perr.Wrapf(err, perr.ErrorCodeStorageIO, "read %s", path)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return true, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s", path)
	}
	return true, nil
}

// LoadRaw returns the undecoded document, nil when the file is missing or blank
func LoadRaw(path string) (json.RawMessage, error) {
	var raw json.RawMessage
	found, err := Load(path, &raw)
	if err != nil || !found {
		return nil, err
	}
	return raw, nil
}

// Save writes v as indented JSON to path via a temp file and rename,
// so readers never observe a partially written document
func Save(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s", path)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "create dir for %s", path)
	}

	tmp := path + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "create %s", tmp)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "write %s", tmp)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "sync %s", tmp)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "close %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return perr.Wrapf(err, perr.ErrorCodeStorageIO, "replace %s", path)
	}
	return nil
}
