package books

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/aggregate"
	"github.com/saif55582/library/pkg/authors"
	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/forms"
	"github.com/saif55582/library/pkg/genres"
	"github.com/saif55582/library/pkg/models"
	"github.com/samber/lo"
)

type handler struct {
	pipeline      *forms.Pipeline
	bookService   *Service
	authorService *authors.Service
	genreService  *genres.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_list", map[string]interface{}{
		"Title": "Book List",
		"Books": books,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"book": func(ctx context.Context) (interface{}, error) {
			return h.bookService.RetrieveBook(ctx, id)
		},
		"instances": func(ctx context.Context) (interface{}, error) {
			return h.bookService.GetBookInstances(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_detail", map[string]interface{}{
		"Title":     "Book Detail",
		"Book":      results["book"],
		"Instances": results["instances"],
	}))
}

// referenceLists fetches every author and genre concurrently; the book form
// needs both to render its select and checkbox inputs.
func (h *handler) referenceLists(ctx context.Context) ([]*models.Author, []*models.Genre, error) {
	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"authors": func(ctx context.Context) (interface{}, error) {
			return h.authorService.ListAuthors(ctx)
		},
		"genres": func(ctx context.Context) (interface{}, error) {
			return h.genreService.ListGenres(ctx)
		},
	})
	if err != nil {
		return nil, nil, errors.WithStack(err)
	}
	return results["authors"].([]*models.Author), results["genres"].([]*models.Genre), nil
}

// flagSelected marks every genre whose id appears in the candidate's genre
// set so the re-rendered form preserves checkbox state.
func flagSelected(list []*models.Genre, selected []string) {
	for _, genre := range list {
		genre.Checked = lo.Contains(selected, genre.ID)
	}
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	allAuthors, allGenres, err := h.referenceLists(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_form", map[string]interface{}{
		"Title":   "Create Book",
		"Authors": allAuthors,
		"Genres":  allGenres,
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := BookPayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(fieldErrs) > 0 {
		allAuthors, allGenres, err := h.referenceLists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		flagSelected(allGenres, payload.GenreSet())

		return errors.WithStack(c.Render(http.StatusUnprocessableEntity, "book_form", map[string]interface{}{
			"Title":   "Create Book",
			"Book":    payload,
			"Authors": allAuthors,
			"Genres":  allGenres,
			"Errors":  fieldErrs,
		}))
	}

	book := &models.Book{
		Title:    payload.Title,
		AuthorID: payload.AuthorID,
		Summary:  payload.Summary,
		ISBN:     payload.ISBN,
	}
	if err := h.bookService.CreateBook(ctx, book, payload.GenreSet()); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, book.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"book": func(ctx context.Context) (interface{}, error) {
			return h.bookService.RetrieveBook(ctx, id)
		},
		"instances": func(ctx context.Context) (interface{}, error) {
			return h.bookService.GetBookInstances(ctx, id)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "book_delete", map[string]interface{}{
		"Title":     "Delete Book",
		"Book":      results["book"],
		"Instances": results["instances"],
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := DeleteBookPayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fieldErrs) > 0 {
		return errcodes.MalformedPayload()
	}

	result, err := h.bookService.DeleteBook(ctx, payload.BookID)
	if err != nil {
		return errors.WithStack(err)
	}

	if !result.Deleted {
		book, err := h.bookService.RetrieveBook(ctx, payload.BookID)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.Render(http.StatusOK, "book_delete", map[string]interface{}{
			"Title":     "Delete Book",
			"Book":      book,
			"Instances": result.DependentInstances,
		}))
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, "/catalog/books"))
}

func (h *handler) updateForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	results, err := aggregate.Run(ctx, map[string]aggregate.Query{
		"book": func(ctx context.Context) (interface{}, error) {
			return h.bookService.RetrieveBook(ctx, id)
		},
		"authors": func(ctx context.Context) (interface{}, error) {
			return h.authorService.ListAuthors(ctx)
		},
		"genres": func(ctx context.Context) (interface{}, error) {
			return h.genreService.ListGenres(ctx)
		},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book := results["book"].(*models.Book)
	allGenres := results["genres"].([]*models.Genre)
	flagSelected(allGenres, book.GenreIDs())

	return errors.WithStack(c.Render(http.StatusOK, "book_form", map[string]interface{}{
		"Title":   "Update Book",
		"Book":    book,
		"Authors": results["authors"],
		"Genres":  allGenres,
	}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	// The identifier comes from the route and is carried through unchanged;
	// the form never supplies it.
	id := c.Param("id")

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := BookPayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(fieldErrs) > 0 {
		allAuthors, allGenres, err := h.referenceLists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		flagSelected(allGenres, payload.GenreSet())

		return errors.WithStack(c.Render(http.StatusUnprocessableEntity, "book_form", map[string]interface{}{
			"Title":   "Update Book",
			"Book":    payload,
			"Authors": allAuthors,
			"Genres":  allGenres,
			"Errors":  fieldErrs,
		}))
	}

	book := &models.Book{
		ID:       id,
		Title:    payload.Title,
		AuthorID: payload.AuthorID,
		Summary:  payload.Summary,
		ISBN:     payload.ISBN,
	}
	if err := h.bookService.UpdateBook(ctx, book, payload.GenreSet()); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, book.URL()))
}
