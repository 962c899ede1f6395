// Package jsonfile writes JSON documents the way Node tooling does: two-space
// indentation, no HTML escaping and a trailing platform newline.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ejectkit/create-app/internal/platform"
)

// Marshal encodes v as indented JSON terminated by the platform newline.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	return append(out, platform.EOL()...), nil
}

// Write encodes v and writes it to path.
func Write(path string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
