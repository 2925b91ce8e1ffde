package catalog

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
	"gorm.io/gorm"

	"eventhire/internal/availability"
	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db))

	svc := NewService(repository.NewMaterialRepository(db), repository.NewEventRepository(db), availability.New(availability.DefaultWarnThreshold))
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r, db
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_MaterialViews(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodPost, "/api/materiali", `{"nome":"Faro PAR","categoria":"Luci","scorta":12,"prezzo_base":"18.50"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodPost, "/api/tecnici", `{"nome":"Fonico","scorta":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"is_tecnico":true`)
	assert.Contains(t, w.Body.String(), `"scorta":0`)

	w = do(r, http.MethodGet, "/api/tecnici", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Fonico")
	assert.NotContains(t, w.Body.String(), "Faro PAR")

	w = do(r, http.MethodGet, "/api/materiali/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/api/materiali", `{"scorta":-1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"nome":"required"`)
}

func TestHandler_SearchReportsAvailability(t *testing.T) {
	r, db := newTestRouter(t)
	ctx := context.Background()

	w := do(r, http.MethodPost, "/api/materiali", `{"nome":"Sedia Tiffany","categoria":"Arredo","scorta":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	client := domain.Client{UID: "c", Name: "Rossi"}
	require.NoError(t, repository.NewClientRepository(db).Create(ctx, &client, 2025))
	venue := domain.Venue{UID: "v", Name: "Cascina"}
	require.NoError(t, repository.NewVenueRepository(db).Create(ctx, &venue, 2025))

	day := dates.New(2025, 9, 13)
	ev := &domain.Event{
		GroupUID: "g", Title: "Matrimonio", Date: day, LocationIndex: 1,
		Status: domain.EventConfirmed, OfferStatus: domain.OfferSent,
		DepositState: domain.PayNone, BalanceState: domain.PayToSend,
		ClientID: client.ID, VenueID: venue.ID,
	}
	require.NoError(t, repository.NewEventRepository(db).Save(ctx, ev, []domain.EventLine{
		{MaterialID: 1, Qty: 8, CoverageDays: 2},
	}))

	w = do(r, http.MethodGet, "/api/catalogo/search?term=sedia&data=2025-09-14", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data struct {
			Results []SearchItem `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Results, 1)
	got := body.Data.Results[0]
	assert.Equal(t, 8, got.Booked)
	assert.Equal(t, 2, got.Available)
	assert.Equal(t, availability.StatusWarn, got.Status)

	w = do(r, http.MethodGet, "/api/catalogo/search?term=sedia&data=2025-09-15", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Data.Results[0].Available)
}

func TestHandler_SuggestAndGuests(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, body := range []string{
		`{"nome":"Mixer","categoria":"Audio","sottocategoria":"Regia","scorta":2}`,
		`{"nome":"Stagebox","categoria":"Audio","sottocategoria":"Regia","scorta":1}`,
		`{"nome":"Cavo XLR","categoria":"Cavi","scorta":40}`,
	} {
		w := do(r, http.MethodPost, "/api/materiali", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := do(r, http.MethodPost, "/api/materiali/1/suggeriti", `{"suggested":3,"qty_default":4,"label":"Cablaggio"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodGet, "/api/suggest?materiale=1", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		Data struct {
			Items []SuggestionItem `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data.Items, 2)
	assert.Equal(t, "Cavo XLR", body.Data.Items[0].Name)
	assert.Equal(t, "Stagebox", body.Data.Items[1].Name)

	w = do(r, http.MethodGet, "/api/suggest", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/api/suggestions?guests=400", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tecnici":5`)
	assert.Contains(t, w.Body.String(), `"caposquadra":1`)
}
