package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates. Every
// page is a {{define}} block so handlers address templates by name.
type Renderer struct {
	templates *template.Template
}

func New() (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"statusClass": statusClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return errors.WithStack(r.templates.ExecuteTemplate(w, name, data))
}

func statusClass(status string) string {
	switch status {
	case models.StatusAvailable:
		return "text-success"
	case models.StatusMaintenance:
		return "text-danger"
	default:
		return "text-muted"
	}
}
