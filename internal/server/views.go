package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templateFS embed.FS

// NewViewEngine returns the html/template engine over the embedded template set.
func NewViewEngine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		// The templates directory is embedded at compile time; failing to
		// open it means the binary itself is broken.
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
