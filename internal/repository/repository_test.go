package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventhire/internal/database"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

type fixture struct {
	db       *gorm.DB
	client   domain.Client
	venue    domain.Venue
	speaker  domain.Material
	tables   domain.Material
	events   *EventRepository
	slots    *SlotRepository
	revision *RevisionRepository
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(":memory:", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(ctx, db))

	f := &fixture{
		db:       db,
		events:   NewEventRepository(db),
		slots:    NewSlotRepository(db),
		revision: NewRevisionRepository(db),
	}

	f.client = domain.Client{UID: "c-1", Name: "Bianchi"}
	require.NoError(t, NewClientRepository(db).Create(ctx, &f.client, 2025))
	f.venue = domain.Venue{UID: "v-1", Name: "Villa Aurora", DistanceKm: decimal.NewFromInt(40)}
	require.NoError(t, NewVenueRepository(db).Create(ctx, &f.venue, 2025))

	audio := "Audio"
	furniture := "Arredo"
	f.speaker = domain.Material{Name: "Cassa attiva", Category: &audio, Stock: 6, BasePrice: decimal.NewFromInt(50), UnitLabel: domain.UnitPiece}
	f.tables = domain.Material{Name: "Tavolo tondo", Category: &furniture, Stock: 20, BasePrice: decimal.NewFromInt(12), UnitLabel: domain.UnitPiece}
	mats := NewMaterialRepository(db)
	require.NoError(t, mats.Create(ctx, &f.speaker))
	require.NoError(t, mats.Create(ctx, &f.tables))
	return f
}

func (f *fixture) event(day dates.Date, loc int) *domain.Event {
	return &domain.Event{
		GroupUID:      "g",
		Title:         "Matrimonio",
		Date:          day,
		LocationIndex: loc,
		Status:        domain.EventDraft,
		OfferStatus:   domain.OfferPending,
		DepositState:  domain.PayNone,
		BalanceState:  domain.PayToSend,
		ClientID:      f.client.ID,
		VenueID:       f.venue.ID,
	}
}

func TestExternalIDs(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	clients := NewClientRepository(f.db)

	assert.Equal(t, "CLT-2025-0001", f.client.ExternalID)
	assert.Equal(t, "LUG-2025-0001", f.venue.ExternalID)

	second := domain.Client{UID: "c-2", Name: "Verdi"}
	require.NoError(t, clients.Create(ctx, &second, 2025))
	assert.Equal(t, "CLT-2025-0002", second.ExternalID)

	nextYear := domain.Client{UID: "c-3", Name: "Neri"}
	require.NoError(t, clients.Create(ctx, &nextYear, 2026))
	assert.Equal(t, "CLT-2026-0001", nextYear.ExternalID)
}

func TestSave_SlotFollowsEvent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	day := dates.New(2025, 6, 14)

	a := f.event(day, 1)
	require.NoError(t, f.events.Save(ctx, a, nil))

	b := f.event(day, 1)
	err := f.events.Save(ctx, b, nil)
	assert.ErrorIs(t, err, ErrSlotTaken)

	b = f.event(day, 2)
	require.NoError(t, f.events.Save(ctx, b, nil))

	used, err := f.slots.UsedOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, used)

	a.Status = domain.EventCancelled
	require.NoError(t, f.events.Save(ctx, a, nil))

	used, err = f.slots.UsedOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, used)

	holder, err := f.slots.Holder(ctx, day, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, b.ID, holder)

	holder, err = f.slots.Holder(ctx, day, 2, b.ID)
	require.NoError(t, err)
	assert.Zero(t, holder)
}

func TestSave_ReplacesLines(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	e := f.event(dates.New(2025, 7, 1), 1)
	require.NoError(t, f.events.Save(ctx, e, []domain.EventLine{
		{MaterialID: f.speaker.ID, Qty: 2, CoverageDays: 1},
		{MaterialID: f.tables.ID, Qty: 10, CoverageDays: 1},
	}))

	got, err := f.events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Cassa attiva", got.Lines[0].Material.Name)

	got.Title = "Matrimonio Rossi"
	require.NoError(t, f.events.Save(ctx, got, []domain.EventLine{{MaterialID: f.tables.ID, Qty: 4, CoverageDays: 1}}))

	got, err = f.events.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Matrimonio Rossi", got.Title)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 4, got.Lines[0].Qty)

	_, err = f.events.GetByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookedLines_WindowAndCancelled(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// multi-day range 10..12
	ranged := f.event(dates.New(2025, 9, 10), 1)
	ranged.DateFrom = dates.New(2025, 9, 10).Ptr()
	ranged.DateTo = dates.New(2025, 9, 12).Ptr()
	require.NoError(t, f.events.Save(ctx, ranged, []domain.EventLine{{MaterialID: f.speaker.ID, Qty: 3, CoverageDays: 1}}))

	// single day 5 covering 7 days -> 5..11
	covered := f.event(dates.New(2025, 9, 5), 2)
	require.NoError(t, f.events.Save(ctx, covered, []domain.EventLine{{MaterialID: f.speaker.ID, Qty: 1, CoverageDays: 7}}))

	cancelled := f.event(dates.New(2025, 9, 11), 3)
	cancelled.Status = domain.EventCancelled
	require.NoError(t, f.events.Save(ctx, cancelled, []domain.EventLine{{MaterialID: f.speaker.ID, Qty: 5, CoverageDays: 1}}))

	// far in the past, must be filtered out
	old := f.event(dates.New(2025, 1, 2), 1)
	require.NoError(t, f.events.Save(ctx, old, []domain.EventLine{{MaterialID: f.speaker.ID, Qty: 2, CoverageDays: 1}}))

	rows, err := f.events.BookedLines(ctx, dates.New(2025, 9, 11), dates.New(2025, 9, 11), []int64{f.speaker.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byEvent := map[int64]BookedLine{}
	for _, r := range rows {
		byEvent[r.EventID] = r
	}
	start, end := byEvent[covered.ID].Span()
	assert.Equal(t, dates.New(2025, 9, 5), start)
	assert.Equal(t, dates.New(2025, 9, 11), end)
	assert.Equal(t, "Bianchi", byEvent[ranged.ID].ClientName)
	assert.Equal(t, "Audio", byEvent[ranged.ID].Category)

	rows, err = f.events.BookedLines(ctx, dates.New(2025, 9, 11), dates.New(2025, 9, 11), []int64{f.tables.ID})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRevisions_AppendOnlyOnChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	e := f.event(dates.New(2025, 5, 5), 1)
	require.NoError(t, f.events.Save(ctx, e, nil))

	rev := &domain.EventRevision{EventID: e.ID, Payload: `{"titolo":"A"}`}
	created, err := f.revision.Append(ctx, rev)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 0, rev.Ref)

	created, err = f.revision.Append(ctx, &domain.EventRevision{EventID: e.ID, Payload: `{"titolo":"A"}`})
	require.NoError(t, err)
	assert.False(t, created)

	rev = &domain.EventRevision{EventID: e.ID, Payload: `{"titolo":"B"}`}
	created, err = f.revision.Append(ctx, rev)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, rev.Ref)

	list, err := f.revision.List(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Ref)

	_, err = f.revision.GetByRef(ctx, e.ID, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_RemovesChildren(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	day := dates.New(2025, 8, 8)

	e := f.event(day, 4)
	require.NoError(t, f.events.Save(ctx, e, []domain.EventLine{{MaterialID: f.tables.ID, Qty: 1, CoverageDays: 1}}))
	require.NoError(t, f.events.Delete(ctx, e.ID))

	used, err := f.slots.UsedOn(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.ErrorIs(t, f.events.Delete(ctx, e.ID), ErrNotFound)
}

func TestCategories(t *testing.T) {
	f := setup(t)
	nodes, err := NewMaterialRepository(f.db).Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Arredo", nodes[0].Category)
	assert.Equal(t, "Audio", nodes[1].Category)
}
