package genres

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/saif55582/library/pkg/errcodes"
	"github.com/saif55582/library/pkg/forms"
	"github.com/saif55582/library/pkg/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newGenresTestContext(t *testing.T, form url.Values, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	renderer, err := views.New()
	require.NoError(t, err)
	e.Renderer = renderer
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func newGenresTestHandler(t *testing.T, db *bun.DB) *handler {
	t.Helper()

	pipeline, err := forms.New()
	require.NoError(t, err)
	return &handler{pipeline: pipeline, genreService: NewService(db)}
}

func TestHandlerCreate_DuplicateNameRedirectsToExisting(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := newGenresTestHandler(t, db)

	c, rr := newGenresTestContext(t, url.Values{"name": {"Fantasy"}}, "/catalog/genre/create")
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	first := rr.Header().Get(echo.HeaderLocation)

	// The same name submitted again lands on the same record.
	c, rr = newGenresTestContext(t, url.Values{"name": {"Fantasy"}}, "/catalog/genre/create")
	require.NoError(t, h.create(c))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, first, rr.Header().Get(echo.HeaderLocation))

	count, err := h.genreService.CountGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandlerCreate_MissingNameReRendersForm(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := newGenresTestHandler(t, db)

	c, rr := newGenresTestContext(t, url.Values{}, "/catalog/genre/create")
	require.NoError(t, h.create(c))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "is required")

	count, err := h.genreService.CountGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestHandlerUpdate_NotImplemented(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := newGenresTestHandler(t, db)

	c, _ := newGenresTestContext(t, url.Values{}, "/catalog/genre/some-id/update")

	err := h.updateForm(c)
	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusNotImplemented, codeErr.HTTPCode)
	assert.Equal(t, "NOT IMPLEMENTED: Genre update GET", codeErr.Message)
}
