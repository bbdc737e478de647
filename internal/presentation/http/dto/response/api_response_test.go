package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/bebidas-pos/internal/pkg/logging"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
)

func render(t *testing.T, fn func(c *gin.Context)) (int, map[string]json.RawMessage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-1"))
	fn(c)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestErrorRendersFieldErrors(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, apperror.NewFieldError("quantity", "must be greater than zero"))
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.JSONEq(t, `false`, string(body["success"]))
	assert.JSONEq(t, `[{"field":"quantity","message":"must be greater than zero"}]`, string(body["errors"]))
	assert.Contains(t, string(body["meta"]), `"request_id":"req-1"`)
}

func TestErrorRendersKindAndDetails(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, apperror.NewInsufficientStockError(apperror.StockShortage{
			ProductID: "p1", Name: "Cerveja", Requested: 3, Available: 2,
		}))
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.JSONEq(t, `{"kind":"insufficient_stock","details":{"product_id":"p1","name":"Cerveja","requested":3,"available":2}}`, string(body["errors"]))
}

func TestErrorWrapsPlainErrorsAsInternal(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Error(c, errors.New("boom"))
	})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"kind":"internal"}`, string(body["errors"]))
}

func TestSuccessEnvelope(t *testing.T) {
	code, body := render(t, func(c *gin.Context) {
		Created(c, "Order placed successfully", gin.H{"order_number": "VENDA00001"})
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.JSONEq(t, `true`, string(body["success"]))
	assert.JSONEq(t, `{"order_number":"VENDA00001"}`, string(body["data"]))
	assert.NotContains(t, body, "errors")
}
