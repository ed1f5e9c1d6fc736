package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/saif55582/library/pkg/authors"
	"github.com/saif55582/library/pkg/bookinstances"
	"github.com/saif55582/library/pkg/books"
	"github.com/saif55582/library/pkg/forms"
	"github.com/saif55582/library/pkg/genres"
	"github.com/uptrace/bun"
)

// RegisterRoutes mounts the whole catalog surface under /catalog.
func RegisterRoutes(e *echo.Echo, db *bun.DB, pipeline *forms.Pipeline) {
	h := &handler{
		authorService:   authors.NewService(db),
		genreService:    genres.NewService(db),
		bookService:     books.NewService(db),
		instanceService: bookinstances.NewService(db),
	}

	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/catalog/")
	})

	g := e.Group("/catalog")
	g.GET("", h.index)
	g.GET("/", h.index)

	authors.RegisterRoutesWithGroup(g, db, pipeline)
	genres.RegisterRoutesWithGroup(g, db, pipeline)
	books.RegisterRoutesWithGroup(g, db, pipeline)
	bookinstances.RegisterRoutesWithGroup(g, db, pipeline)
}
