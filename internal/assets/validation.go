package assets

import (
	"fmt"
	"strings"
)

// maxNameLength bounds style names; longer names cannot be file names anyway.
const maxNameLength = 64

// ValidateAssetName reports whether name can be used as a style file name.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case len(name) > maxNameLength:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidAssetName, maxNameLength)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
