package pricing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/repository"
)

func TestHandler_Pricing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))

	materials := repository.NewMaterialRepository(db)
	venues := repository.NewVenueRepository(db)
	vehicles := repository.NewVehicleRepository(db)
	require.NoError(t, materials.Create(ctx, &domain.Material{Name: "Sedia", BasePrice: dec("2"), UnitLabel: domain.UnitPiece, Stock: 100}))
	require.NoError(t, venues.Create(ctx, &domain.Venue{UID: "v", Name: "Villa", DistanceKmRound: dec("100")}, 2025))
	require.NoError(t, vehicles.Create(ctx, &domain.Vehicle{Plate: "AB123CD", CallOutCost: dec("30"), CostPerKm: dec("0.5"), Active: true}))

	r := gin.New()
	NewHandler(NewService(materials, venues, vehicles)).RegisterRoutes(r.Group("/api"))

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := post("/api/pricing/quote", `{"data":"2025-06-14","luogo":1,"mezzo":1,"righe":[{"materiale":1,"qta":"50"}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"pu_suggerito":"2.28"`)
	assert.Contains(t, w.Body.String(), `"importo":"114"`)
	assert.Contains(t, w.Body.String(), `"logistica":"80"`)
	assert.Contains(t, w.Body.String(), `"totale":"194"`)

	w = post("/api/pricing/quote", `{"righe":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post("/api/pricing", `{"materiale_id":1,"luogo_id":1,"qta":4,"data":"2025-06-14"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"success":true,"data":{"totale":"8"}}`, w.Body.String())

	w = post("/api/pricing", `{"materiale_id":1,"luogo_id":7,"qta":4,"data":"2025-06-14"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
