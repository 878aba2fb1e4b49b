package assets

// StyleLoader loads a CSS style by name, without the .css extension.
// Implementations return ErrStyleNotFound for unknown names and
// ErrInvalidAssetName for names that are not bare identifiers.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
}
