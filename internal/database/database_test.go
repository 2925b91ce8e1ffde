package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	db, err := Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	for _, m := range domain.Models() {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
}

func TestSlotUniqueness_SQLite(t *testing.T) {
	ctx := context.Background()
	db, err := Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, Migrate(ctx, db))

	client := domain.Client{UID: "c1", ExternalID: "CLT-2025-0001", Name: "Rossi"}
	venue := domain.Venue{UID: "v1", ExternalID: "LUG-2025-0001", Name: "Villa"}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&venue).Error)

	day := dates.New(2025, 6, 14)
	e1 := domain.Event{Date: day, LocationIndex: 1, ClientID: client.ID, VenueID: venue.ID, Status: domain.EventDraft}
	e2 := domain.Event{Date: day, LocationIndex: 1, ClientID: client.ID, VenueID: venue.ID, Status: domain.EventDraft}
	require.NoError(t, db.Create(&e1).Error)
	require.NoError(t, db.Create(&e2).Error)

	require.NoError(t, db.Create(&domain.CalendarSlot{Date: day, LocationIndex: 1, EventID: e1.ID}).Error)
	err = db.Create(&domain.CalendarSlot{Date: day, LocationIndex: 1, EventID: e2.ID}).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation(t *testing.T) {
	pg := &pgconn.PgError{Code: "23505", ConstraintName: "idx_slot_date_location"}

	assert.True(t, IsUniqueViolation(pg))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pg), "idx_slot"))
	assert.False(t, IsUniqueViolation(pg, "idx_revision_ref"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: calendar_slots.date, calendar_slots.location_index"), "calendar_slots.date"))
	assert.False(t, IsUniqueViolation(errors.New("disk full")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsForeignKeyViolation(errors.New("constraint failed: FOREIGN KEY constraint failed (787)")))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}
