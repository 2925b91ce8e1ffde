package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventhire/internal/database"
	"eventhire/internal/repository"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	h := NewHandler(NewService(repository.NewClientRepository(db), repository.NewVenueRepository(db)))
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ClientLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/clienti", `{"nome":"Studio Verdi","email":"info@verdi.it"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID         int64  `json:"id"`
			ExternalID string `json:"external_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Regexp(t, `^CLT-\d{4}-0001$`, created.Data.ExternalID)

	w = do(r, http.MethodGet, "/api/clienti?q=verdi", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Studio Verdi")

	w = do(r, http.MethodPut, "/api/clienti/1", `{"nome":"Studio Verdi srl"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Studio Verdi srl")

	w = do(r, http.MethodDelete, "/api/clienti/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, "/api/clienti/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_Validation(t *testing.T) {
	r := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/luoghi", `{"citta":"Bergamo"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"nome":"required"`)

	w = do(r, http.MethodGet, "/api/luoghi/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/luoghi", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
