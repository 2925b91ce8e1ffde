package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

func TestHandler_CalendarViews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))

	client := domain.Client{UID: "c", Name: "Rossi"}
	require.NoError(t, repository.NewClientRepository(db).Create(ctx, &client, 2025))
	venue := domain.Venue{UID: "v", Name: "Sala A"}
	require.NoError(t, repository.NewVenueRepository(db).Create(ctx, &venue, 2025))

	events := repository.NewEventRepository(db)
	day := dates.New(2025, 5, 10)
	for _, e := range []*domain.Event{
		{GroupUID: "a", Title: "Gala", Date: day, LocationIndex: 1, Status: domain.EventConfirmed},
		{GroupUID: "b", Title: "Cena", Date: day, LocationIndex: 3, Status: domain.EventCancelled},
	} {
		e.OfferStatus, e.DepositState, e.BalanceState = domain.OfferPending, domain.PayNone, domain.PayToSend
		e.ClientID, e.VenueID = client.ID, venue.ID
		require.NoError(t, events.Save(ctx, e, nil))
	}

	r := gin.New()
	NewHandler(NewService(repository.NewSlotRepository(db), 4)).RegisterRoutes(r.Group("/api"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendario/availability?data=2025-05-10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"data":"2025-05-10","used":[1],"free":[2,3,4],"suggested":2}}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendario/availability", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/calendario/location-calendar?year=2025", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"titolo":"Gala"`)
	assert.Contains(t, w.Body.String(), `"cliente_nome":"Rossi"`)
	assert.NotContains(t, w.Body.String(), `"titolo":"Cena"`)
}
