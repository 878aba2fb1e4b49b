// Package assets provides the CSS styles applied to generated documents.
//
// Styles come from two places:
//
//	EmbeddedLoader    - built-in styles compiled into the binary
//	FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	StyleResolver     - custom directory first, embedded as fallback
//
// Style names are bare identifiers ("serif", not "serif.css"). Names with
// path separators or dots are rejected, and the filesystem loader refuses
// paths that resolve outside its base directory, symlinks included.
package assets
