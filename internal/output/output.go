// Package output writes the extraction artifacts: the JSON record file
// consumed by the UI and an optional YAML report of failed entities.
package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/rpg-compendium/internal/errors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// EncodeJSON renders v with two-space indentation and without HTML
// escaping, so "<" and "&" in descriptions survive as written. Map keys are
// sorted by encoding/json, which keeps the output byte-stable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(err, "failed to encode json")
	}

	return buf.Bytes(), nil
}

// WriteJSON encodes v and writes it to path, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return errors.InvalidArgument("output path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to create output directory").
				WithMeta("path", dir)
		}
	}

	if err := os.WriteFile(path, data, filePerm); err != nil {
		return errors.WrapWithCode(err, errors.CodeDataLoss, "failed to write output").
			WithMeta("path", path)
	}

	return nil
}
