package static

import _ "embed"

//go:embed index.html
var indexHTML []byte

// IndexHTML returns the embedded to-do list page served at the root path.
func IndexHTML() []byte {
	return indexHTML
}
