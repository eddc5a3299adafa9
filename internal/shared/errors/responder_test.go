package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOutOfStock = errors.New("out of stock")

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/things/:id", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things/7", nil))

	body := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestChainedResponder_UsesMapperAndFlattensExtensions(t *testing.T) {
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errOutOfStock) {
			return ErrConflict.WithDetail(err.Error()).WithExtension("sku", "A-1"), true
		}
		return ProblemDetail{}, false
	})

	rec, body := serve(t, func(c *gin.Context) { responder.RespondError(c, errOutOfStock) })

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeConflict, body["type"])
	assert.Equal(t, "A-1", body["sku"])
	assert.Equal(t, "/things/7", body["instance"])
}

func TestResponder_HidesUnmappedErrors(t *testing.T) {
	responder := NewChainedResponder("https://api.example.com")

	rec, body := serve(t, func(c *gin.Context) { responder.RespondError(c, errors.New("pq: connection refused")) })

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "https://api.example.com"+TypeInternal, body["type"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestWithExtensionDoesNotMutateTemplate(t *testing.T) {
	_ = ErrValidation.WithExtension("field", "x")
	assert.Nil(t, ErrValidation.Extensions)
}
