package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// verifyOutput checks that an engine call actually left a usable file at p.
// With still set, JPEG and PNG files must also decode.
func verifyOutput(p string, still bool) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("artifact not written: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("artifact path %s is a directory", p)
	}
	if info.Size() == 0 {
		return fmt.Errorf("artifact %s is empty", p)
	}
	if !still {
		return nil
	}

	switch strings.ToLower(filepath.Ext(p)) {
	case ".jpg", ".jpeg", ".png":
	default:
		return nil
	}

	img, err := imaging.Open(p)
	if err != nil {
		return fmt.Errorf("artifact %s does not decode: %w", p, err)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("artifact %s has no pixels", p)
	}
	return nil
}
