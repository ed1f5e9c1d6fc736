package catalog

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/aggregate"
	"github.com/saif55582/library/pkg/authors"
	"github.com/saif55582/library/pkg/bookinstances"
	"github.com/saif55582/library/pkg/books"
	"github.com/saif55582/library/pkg/genres"
	"github.com/saif55582/library/pkg/models"
)

type handler struct {
	authorService   *authors.Service
	genreService    *genres.Service
	bookService     *books.Service
	instanceService *bookinstances.Service
}

// index renders the dashboard: five independent counts fetched
// concurrently. A failed count renders the page with the error message in
// place of the numbers rather than the generic error page.
func (h *handler) index(c echo.Context) error {
	ctx := c.Request().Context()

	available := models.StatusAvailable
	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"book_count": func(ctx context.Context) (interface{}, error) {
			return h.bookService.CountBooks(ctx)
		},
		"book_instance_count": func(ctx context.Context) (interface{}, error) {
			return h.instanceService.CountBookInstances(ctx, bookinstances.CountBookInstancesOptions{})
		},
		"book_instance_available_count": func(ctx context.Context) (interface{}, error) {
			return h.instanceService.CountBookInstances(ctx, bookinstances.CountBookInstancesOptions{Status: &available})
		},
		"author_count": func(ctx context.Context) (interface{}, error) {
			return h.authorService.CountAuthors(ctx)
		},
		"genre_count": func(ctx context.Context) (interface{}, error) {
			return h.genreService.CountGenres(ctx)
		},
	})

	vm := map[string]interface{}{
		"Title": "Library Management System",
		"Data":  results,
	}
	if err != nil {
		vm["Error"] = err.Error()
	}

	return errors.WithStack(c.Render(http.StatusOK, "index", vm))
}
