package genres

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/aggregate"
	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/forms"
	"github.com/saif55582/library/pkg/models"
)

type handler struct {
	pipeline     *forms.Pipeline
	genreService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	genres, err := h.genreService.ListGenres(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "genre_list", map[string]interface{}{
		"Title":  "Genre List",
		"Genres": genres,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"genre": func(ctx context.Context) (interface{}, error) {
			return h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
		},
		"books": func(ctx context.Context) (interface{}, error) {
			return h.genreService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "genre_detail", map[string]interface{}{
		"Title": "Genre Detail",
		"Genre": results["genre"],
		"Books": results["books"],
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.Render(http.StatusOK, "genre_form", map[string]interface{}{
		"Title": "Create Genre",
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := CreateGenrePayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(fieldErrs) > 0 {
		return errors.WithStack(c.Render(http.StatusUnprocessableEntity, "genre_form", map[string]interface{}{
			"Title":  "Create Genre",
			"Genre":  payload,
			"Errors": fieldErrs,
		}))
	}

	// CreateGenre deduplicates by exact name; when the genre already exists
	// the redirect targets the existing record's canonical URL.
	genre, err := h.genreService.CreateGenre(ctx, &models.Genre{Name: payload.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, genre.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"genre": func(ctx context.Context) (interface{}, error) {
			return h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &id})
		},
		"books": func(ctx context.Context) (interface{}, error) {
			return h.genreService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "genre_delete", map[string]interface{}{
		"Title": "Delete Genre",
		"Genre": results["genre"],
		"Books": results["books"],
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := DeleteGenrePayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fieldErrs) > 0 {
		return errcodes.MalformedPayload()
	}

	result, err := h.genreService.DeleteGenre(ctx, payload.GenreID)
	if err != nil {
		return errors.WithStack(err)
	}

	if !result.Deleted {
		genre, err := h.genreService.RetrieveGenre(ctx, RetrieveGenreOptions{ID: &payload.GenreID})
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.Render(http.StatusOK, "genre_delete", map[string]interface{}{
			"Title": "Delete Genre",
			"Genre": genre,
			"Books": result.DependentBooks,
		}))
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, "/catalog/genres"))
}

func (h *handler) updateForm(_ echo.Context) error {
	return errcodes.NotImplemented("Genre update GET")
}

func (h *handler) update(_ echo.Context) error {
	return errcodes.NotImplemented("Genre update POST")
}
