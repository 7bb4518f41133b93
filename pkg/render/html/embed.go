package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded form shell so consumers can render with
// the built-in chrome out of the box.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
