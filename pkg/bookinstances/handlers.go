package bookinstances

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/saif55582/library/pkg/books"
	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/forms"
	"github.com/saif55582/library/pkg/models"
)

type handler struct {
	pipeline        *forms.Pipeline
	instanceService *Service
	bookService     *books.Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	instances, err := h.instanceService.ListBookInstances(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_list", map[string]interface{}{
		"Title":     "Book Instance List",
		"Instances": instances,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.instanceService.RetrieveBookInstance(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_detail", map[string]interface{}{
		"Title":    "Book Instance",
		"Instance": instance,
	}))
}

func (h *handler) createForm(c echo.Context) error {
	ctx := c.Request().Context()

	allBooks, err := h.bookService.ListBooks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_form", map[string]interface{}{
		"Title":    "Create BookInstance",
		"Books":    allBooks,
		"Statuses": models.Statuses,
	}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := CreateBookInstancePayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}

	if len(fieldErrs) > 0 {
		allBooks, err := h.bookService.ListBooks(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		return errors.WithStack(c.Render(http.StatusUnprocessableEntity, "bookinstance_form", map[string]interface{}{
			"Title":    "Create BookInstance",
			"Instance": payload,
			"Books":    allBooks,
			"Statuses": models.Statuses,
			"Errors":   fieldErrs,
		}))
	}

	dueBack, err := forms.ParseDate(payload.DueBack)
	if err != nil {
		return errors.WithStack(err)
	}

	instance := &models.BookInstance{
		BookID:  payload.BookID,
		Imprint: payload.Imprint,
		Status:  payload.Status,
	}
	if dueBack != nil {
		instance.DueBack = *dueBack
	}
	if err := h.instanceService.CreateBookInstance(ctx, instance); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, instance.URL()))
}

func (h *handler) deleteForm(c echo.Context) error {
	ctx := c.Request().Context()

	instance, err := h.instanceService.RetrieveBookInstance(ctx, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Render(http.StatusOK, "bookinstance_delete", map[string]interface{}{
		"Title":    "Delete BookInstance",
		"Instance": instance,
	}))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := c.FormParams()
	if err != nil {
		return errcodes.MalformedPayload()
	}

	payload := DeleteBookInstancePayload{}
	fieldErrs, err := h.pipeline.Decode(ctx, &payload, values)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(fieldErrs) > 0 {
		return errcodes.MalformedPayload()
	}

	if err := h.instanceService.DeleteBookInstance(ctx, payload.BookInstanceID); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.Redirect(http.StatusSeeOther, "/catalog/bookinstances"))
}

func (h *handler) updateForm(_ echo.Context) error {
	return errcodes.NotImplemented("BookInstance update GET")
}

func (h *handler) update(_ echo.Context) error {
	return errcodes.NotImplemented("BookInstance update POST")
}
