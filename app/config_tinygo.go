//go:build tinygo

package app

import (
	"fmt"

	"sparkcraft/hal"
	"sparkcraft/sparkos/quarkgl"
)

func loadSheet(path string) (*quarkgl.Texture, error) {
	if path == "" {
		return nil, nil
	}
	return nil, fmt.Errorf("app: sheet %s: %w", path, hal.ErrNotImplemented)
}
