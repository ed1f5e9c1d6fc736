package authors

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
	pipeline      *forms.Pipeline
	authorService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	authors, err := h.authorService.ListAuthors(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "author_list", map[string]interface{}{
		"Title":   "Author List",
		"Authors": authors,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"author": func(ctx context.Context) (interface{}, error) {
			return h.authorService.RetrieveAuthor(ctx, id)
		},
		"books": func(ctx context.Context) (interface{}, error) {
			return h.authorService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "author_detail", map[string]interface{}{
		"Title":  "Author Detail",
		"Author": results["author"],
		"Books":  results["books"],
	}))
}

func (h *handler) createForm(c echo.Context) error {
	return errors.WithStack(c.Render(http.StatusOK, "author_form", map[string]interface{}{
		"Title": "Create Author",
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := CreateAuthorPayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}

	// Re-render the form with the typed values echoed back so nothing the
	// caller entered is lost.
	if len(fieldErrs) > 0 {
		return errors.WithStack(c.Render(http.StatusUnprocessableEntity, "author_form", map[string]interface{}{
			"Title":  "Create Author",
			"Author": payload,
			"Errors": fieldErrs,
		}))
	}

	dateOfBirth, err := forms.ParseDate(payload.DateOfBirth)
	if err != nil {
		return errors.WithStack(err)
	}
	dateOfDeath, err := forms.ParseDate(payload.DateOfDeath)
	if err != nil {
		return errors.WithStack(err)
	}

	author := &models.Author{
		FirstName:   payload.FirstName,
		FamilyName:  payload.FamilyName,
		DateOfBirth: dateOfBirth,
		DateOfDeath: dateOfDeath,
	}
	if err := h.authorService.CreateAuthor(ctx, author); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, author.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"author": func(ctx context.Context) (interface{}, error) {
			return h.authorService.RetrieveAuthor(ctx, id)
		},
		"books": func(ctx context.Context) (interface{}, error) {
			return h.authorService.GetBooks(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "author_delete", map[string]interface{}{
		"Title":  "Delete Author",
		"Author": results["author"],
		"Books":  results["books"],
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := DeleteAuthorPayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fieldErrs) > 0 {
		return errcodes.MalformedPayload()
	}

	result, err := h.authorService.DeleteAuthor(ctx, payload.AuthorID)
	if err != nil {
		return errors.WithStack(err)
	}

	// Blocked is a valid outcome: show the confirmation screen again with
	// the dependents listed instead of completing the delete.
	if !result.Deleted {
		author, err := h.authorService.RetrieveAuthor(ctx, payload.AuthorID)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.Render(http.StatusOK, "author_delete", map[string]interface{}{
			"Title":  "Delete Author",
			"Author": author,
			"Books":  result.DependentBooks,
		}))
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, "/catalog/authors"))
}

func (h *handler) updateForm(_ echo.Context) error {
	return errcodes.NotImplemented("Author update GET")
}

func (h *handler) update(_ echo.Context) error {
	return errcodes.NotImplemented("Author update POST")
}
