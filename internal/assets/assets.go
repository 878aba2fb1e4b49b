package assets

// DefaultStyleName is the style used when none is configured.
const DefaultStyleName = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// BuiltinStyles lists the built-in style names.
func BuiltinStyles() []string {
	return defaultLoader.Styles()
}
