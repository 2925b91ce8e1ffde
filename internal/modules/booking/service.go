package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"eventhire/internal/availability"
	"eventhire/internal/domain"
	"eventhire/internal/notification"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

const (
	noteCreated  = "Creazione evento"
	noteUpdated  = "Modifica evento"
	noteLines    = "Replace righe"
	noteVersion  = "Nuova versione"
	defaultTitle = "Offerta"
)

// Deps groups the repositories the service reads and writes.
type Deps struct {
	Events    EventRepository
	Slots     SlotRepository
	Revisions RevisionRepository
	Materials MaterialReader
	Clients   ClientReader
	Venues    VenueReader
}

type Service struct {
	events       EventRepository
	slots        SlotRepository
	revisions    RevisionRepository
	materials    MaterialReader
	clients      ClientReader
	venues       VenueReader
	notifier     notification.Publisher
	numLocations int
	log          *zap.Logger
	now          func() time.Time
}

func NewService(d Deps, notifier notification.Publisher, numLocations int, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notification.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		events:       d.Events,
		slots:        d.Slots,
		revisions:    d.Revisions,
		materials:    d.Materials,
		clients:      d.Clients,
		venues:       d.Venues,
		notifier:     notifier,
		numLocations: numLocations,
		log:          log,
		now:          time.Now,
	}
}

// List returns events whose date falls in month (all events when month is
// nil), cancelled ones included, each with the stock badge totals.
func (s *Service) List(ctx context.Context, month *time.Time) ([]EventView, error) {
	f := repository.EventFilter{IncludeCancelled: true}
	var from, to dates.Date
	if month != nil {
		from, to = dates.MonthBounds(month.Year(), month.Month())
		f.From, f.To = &from, &to
	}
	events, err := s.events.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if month != nil {
		kept := events[:0]
		for _, e := range events {
			if !e.Date.Before(from) && !e.Date.After(to) {
				kept = append(kept, e)
			}
		}
		events = kept
	}

	ids := make([]int64, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	lines, err := s.events.LineMaterials(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]EventView, 0, len(events))
	for i := range events {
		e := &events[i]
		e.Lines = lines[e.ID]
		v := toView(e)
		total, available := stockBadge(e.Lines)
		v.StockTotal, v.StockAvailable = &total, &available
		out = append(out, v)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*EventView, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	v := toView(e)
	return &v, nil
}

func (s *Service) Create(ctx context.Context, req EventRequest) (*EventView, error) {
	if err := s.check(ctx, &req); err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	e := &domain.Event{
		GroupUID:     uuid.NewString(),
		Title:        defaultTitle,
		Status:       domain.EventDraft,
		OfferStatus:  domain.OfferPending,
		DepositState: domain.PayNone,
		BalanceState: domain.PayToSend,
	}
	apply(e, req)
	if e.LocationIndex == 0 {
		if e.LocationIndex, err = s.NextSlot(ctx, &e.Date); err != nil {
			return nil, err
		}
	}
	if lines == nil {
		lines = []domain.EventLine{}
	}

	if err := s.save(ctx, e, lines); err != nil {
		return nil, err
	}
	return s.afterChange(ctx, e.ID, noteCreated)
}

// Update applies req to the event and bumps its version. Lines are
// replaced only when req carries them.
func (s *Service) Update(ctx context.Context, id int64, req EventRequest) (*EventView, error) {
	if err := s.check(ctx, &req); err != nil {
		return nil, err
	}
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	apply(e, req)
	e.Version++

	if err := s.save(ctx, e, lines); err != nil {
		return nil, err
	}
	return s.afterChange(ctx, e.ID, noteUpdated)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	e, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return mapErr(err)
	}
	msg := message(notification.TypeEventDeleted, e)
	s.publish(ctx, msg)
	return nil
}

// ReplaceLines swaps every riga of the event.
func (s *Service) ReplaceLines(ctx context.Context, id int64, req ReplaceLinesRequest) (*EventView, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	lines, err := s.buildLines(ctx, req.Lines)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []domain.EventLine{}
	}
	if err := s.events.ReplaceLines(ctx, id, lines); err != nil {
		return nil, mapErr(err)
	}
	return s.afterChange(ctx, id, noteLines)
}

// NewVersion clones an event, lines included, as the next version of its
// group. The clone cannot share the original's slot, so it takes the first
// free location on the same day.
func (s *Service) NewVersion(ctx context.Context, id int64) (*EventView, error) {
	src, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	maxVersion, err := s.events.GroupMaxVersion(ctx, src.GroupUID)
	if err != nil {
		return nil, err
	}

	clone := *src
	clone.ID = 0
	clone.Version = maxVersion + 1
	clone.Client, clone.Venue, clone.Lines = nil, nil, nil
	clone.CreatedAt, clone.UpdatedAt = time.Time{}, time.Time{}
	clone.CategoryNotes = copyNotes(src.CategoryNotes)

	if !clone.IsCancelled() {
		used, err := s.slots.UsedOn(ctx, clone.Date)
		if err != nil {
			return nil, err
		}
		free := availability.FreeSlots(used, s.numLocations)
		if len(free) == 0 {
			return nil, ErrSlotTaken
		}
		clone.LocationIndex = free[0]
	}

	lines := make([]domain.EventLine, len(src.Lines))
	for i, l := range src.Lines {
		l.ID, l.EventID, l.Material = 0, 0, nil
		l.CreatedAt, l.UpdatedAt = time.Time{}, time.Time{}
		lines[i] = l
	}

	if err := s.save(ctx, &clone, lines); err != nil {
		return nil, err
	}
	return s.afterChange(ctx, clone.ID, noteVersion)
}

// MonthList lists events overlapping the month in calendar order.
func (s *Service) MonthList(ctx context.Context, year int, month time.Month) ([]MonthItem, error) {
	from, to := dates.MonthBounds(year, month)
	events, err := s.events.List(ctx, repository.EventFilter{From: &from, To: &to, IncludeCancelled: true})
	if err != nil {
		return nil, err
	}
	out := make([]MonthItem, 0, len(events))
	for i := range events {
		e := &events[i]
		start, _ := e.Span()
		out = append(out, MonthItem{
			ID:            e.ID,
			Title:         e.Title,
			Date:          start,
			DateFrom:      e.DateFrom,
			DateTo:        e.DateTo,
			LocationIndex: e.LocationIndex,
			Status:        e.Status,
			ClientName:    clientName(e),
			OfferStatus:   e.OfferStatus,
			BalanceState:  e.BalanceState,
		})
	}
	return out, nil
}

// NextSlot returns the lowest location index free on day, or 1 when day is
// missing or every location is taken.
func (s *Service) NextSlot(ctx context.Context, day *dates.Date) (int, error) {
	if day == nil || day.IsZero() {
		return 1, nil
	}
	used, err := s.slots.UsedOn(ctx, *day)
	if err != nil {
		return 0, err
	}
	if free := availability.FreeSlots(used, s.numLocations); len(free) > 0 {
		return free[0], nil
	}
	return 1, nil
}

// Revisions lists the snapshots of an event, oldest first.
func (s *Service) Revisions(ctx context.Context, id int64) ([]RevisionView, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	revs, err := s.revisions.List(ctx, id)
	if err != nil {
		return nil, err
	}
	sort.Slice(revs, func(i, j int) bool { return revs[i].Ref < revs[j].Ref })
	out := make([]RevisionView, len(revs))
	for i := range revs {
		out[i] = revisionView(&revs[i])
	}
	return out, nil
}

// SaveRevision snapshots the event. created is false when the snapshot
// matches the latest revision, which is returned instead; ErrNoChanges is
// returned if there is no revision at all.
func (s *Service) SaveRevision(ctx context.Context, id int64, note string) (rev *RevisionView, created bool, err error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, false, err
	}
	r, created, err := s.snapshot(ctx, e, note)
	if err != nil {
		return nil, false, err
	}
	if !created {
		latest, err := s.revisions.Latest(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, ErrNoChanges
		}
		if err != nil {
			return nil, false, err
		}
		r = latest
	}
	v := revisionView(r)
	return &v, created, nil
}

// Diff returns two revisions side by side with the top level fields that
// differ between them.
func (s *Service) Diff(ctx context.Context, id int64, fromRef, toRef int) (*DiffView, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}
	from, err := s.revisions.GetByRef(ctx, id, fromRef)
	if err != nil {
		return nil, revisionErr(err)
	}
	to, err := s.revisions.GetByRef(ctx, id, toRef)
	if err != nil {
		return nil, revisionErr(err)
	}

	changed, err := changedFields(from.Payload, to.Payload)
	if err != nil {
		return nil, err
	}
	return &DiffView{
		EventID: id,
		From:    revisionView(from),
		To:      revisionView(to),
		Changed: changed,
	}, nil
}

// check validates req and the references it carries.
func (s *Service) check(ctx context.Context, req *EventRequest) error {
	if err := validator.Check(req); err != nil {
		return err
	}
	fields := validator.FieldErrors{}
	if req.LocationIndex > s.numLocations {
		fields["location_index"] = "lte"
	}
	if req.DateFrom != nil && req.DateTo != nil && req.DateTo.Before(*req.DateFrom) {
		fields["data_evento_a"] = "gtefield"
	}
	if _, err := s.clients.GetByID(ctx, req.ClientID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		fields["cliente"] = "exists"
	}
	if _, err := s.venues.GetByID(ctx, req.VenueID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		fields["luogo"] = "exists"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}

// buildLines turns requests into lines. A nil input yields nil so updates
// can leave the current lines alone.
func (s *Service) buildLines(ctx context.Context, reqs []LineRequest) ([]domain.EventLine, error) {
	if reqs == nil {
		return nil, nil
	}
	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.MaterialID)
	}
	mats, err := s.materials.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	fields := validator.FieldErrors{}
	lines := make([]domain.EventLine, 0, len(reqs))
	for i, r := range reqs {
		if _, ok := mats[r.MaterialID]; !ok {
			fields[fmt.Sprintf("righe[%d].materiale", i)] = "exists"
			continue
		}
		qty := max(1, r.Qty)
		price := decimal.Zero
		if r.Price != nil {
			price = *r.Price
		}
		amount := price.Mul(decimal.NewFromInt(int64(qty)))
		if r.Amount != nil && !r.Amount.IsZero() {
			amount = *r.Amount
		}
		lines = append(lines, domain.EventLine{
			MaterialID:   r.MaterialID,
			Qty:          qty,
			Price:        price,
			Amount:       amount.Round(2),
			IsTechnician: r.IsTechnician,
			IsTransport:  r.IsTransport,
			CoverageDays: min(max(1, r.CoverageDays), repository.MaxCoverageDays),
		})
	}
	if len(fields) > 0 {
		return nil, fields
	}
	return lines, nil
}

// save checks the slot, then stores the event. The database unique index
// still guards against a concurrent writer taking the slot in between.
func (s *Service) save(ctx context.Context, e *domain.Event, lines []domain.EventLine) error {
	if !e.IsCancelled() {
		holder, err := s.slots.Holder(ctx, e.Date, e.LocationIndex, e.ID)
		if err != nil {
			return err
		}
		if holder != 0 {
			return ErrSlotTaken
		}
	}
	return mapErr(s.events.Save(ctx, e, lines))
}

// afterChange reloads the event, records a revision and notifies listeners.
func (s *Service) afterChange(ctx context.Context, id int64, note string) (*EventView, error) {
	e, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.snapshot(ctx, e, note); err != nil {
		return nil, err
	}
	s.publish(ctx, message(notification.TypeEventChanged, e))
	v := toView(e)
	return &v, nil
}

func (s *Service) snapshot(ctx context.Context, e *domain.Event, note string) (*domain.EventRevision, bool, error) {
	payload, err := json.Marshal(toView(e))
	if err != nil {
		return nil, false, fmt.Errorf("encode revision payload: %w", err)
	}
	rev := &domain.EventRevision{EventID: e.ID, Note: note, Payload: string(payload), CreatedAt: s.now()}
	created, err := s.revisions.Append(ctx, rev)
	if err != nil {
		return nil, false, err
	}
	return rev, created, nil
}

func (s *Service) publish(ctx context.Context, msg notification.Message) {
	msg.At = s.now().UTC()
	if err := s.notifier.Publish(ctx, msg); err != nil {
		s.log.Warn("event notification failed",
			zap.String("type", msg.Type),
			zap.Int64("evento_id", msg.EventID),
			zap.Error(err),
		)
	}
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func apply(e *domain.Event, req EventRequest) {
	if t := strings.TrimSpace(req.Title); t != "" {
		e.Title = t
	}
	e.Date = *req.Date
	e.DateFrom = req.DateFrom
	e.DateTo = req.DateTo
	if req.LocationIndex > 0 {
		e.LocationIndex = req.LocationIndex
	}
	if req.Status != "" {
		e.Status = req.Status
	}
	if req.OfferStatus != "" {
		e.OfferStatus = req.OfferStatus
	}
	if req.DepositAmount != nil {
		e.DepositAmount = *req.DepositAmount
	}
	e.DepositDate = req.DepositDate
	if req.DepositState != "" {
		e.DepositState = req.DepositState
	}
	if req.BalanceState != "" {
		e.BalanceState = req.BalanceState
	}
	e.ClientID = req.ClientID
	e.VenueID = req.VenueID
	e.Notes = req.Notes
	e.CategoryNotes = req.CategoryNotes
	e.DistanceKm = req.DistanceKm
}

func toView(e *domain.Event) EventView {
	v := EventView{
		ID:            e.ID,
		GroupUID:      e.GroupUID,
		Title:         e.Title,
		Date:          e.Date,
		DateFrom:      e.DateFrom,
		DateTo:        e.DateTo,
		LocationIndex: e.LocationIndex,
		Status:        e.Status,
		OfferStatus:   e.OfferStatus,
		DepositAmount: e.DepositAmount,
		DepositState:  e.DepositState,
		BalanceState:  e.BalanceState,
		DepositDate:   e.DepositDate,
		ClientID:      e.ClientID,
		ClientName:    clientName(e),
		VenueID:       e.VenueID,
		Notes:         e.Notes,
		CategoryNotes: e.CategoryNotes,
		DistanceKm:    e.DistanceKm,
		Version:       e.Version,
		Lines:         make([]LineView, 0, len(e.Lines)),
	}
	if v.CategoryNotes == nil {
		v.CategoryNotes = map[string]string{}
	}
	if e.Venue != nil {
		v.VenueName = &e.Venue.Name
	}
	for _, l := range e.Lines {
		lv := LineView{
			ID:           l.ID,
			MaterialID:   l.MaterialID,
			Qty:          l.Qty,
			Price:        l.Price,
			Amount:       l.Amount,
			IsTechnician: l.IsTechnician,
			IsTransport:  l.IsTransport,
			CoverageDays: l.CoverageDays,
		}
		if l.Material != nil {
			lv.MaterialName = &l.Material.Name
		}
		v.Lines = append(v.Lines, lv)
	}
	return v
}

// stockBadge sums the stock of the distinct materials on an event and what
// is left of it after the event's own quantities.
func stockBadge(lines []domain.EventLine) (total, available int) {
	seen := map[int64]bool{}
	booked := 0
	for _, l := range lines {
		booked += l.Qty
		if seen[l.MaterialID] {
			continue
		}
		seen[l.MaterialID] = true
		if l.Material != nil {
			total += l.Material.Stock
		}
	}
	return total, max(0, total-booked)
}

func message(kind string, e *domain.Event) notification.Message {
	start, end := e.Span()
	msg := notification.Message{
		Type:          kind,
		EventID:       e.ID,
		Date:          start.String(),
		LocationIndex: e.LocationIndex,
		Status:        string(e.Status),
	}
	if end != start {
		msg.DateTo = end.String()
	}
	seen := map[int64]bool{}
	for _, l := range e.Lines {
		if !seen[l.MaterialID] {
			seen[l.MaterialID] = true
			msg.MaterialIDs = append(msg.MaterialIDs, l.MaterialID)
		}
	}
	return msg
}

func revisionView(r *domain.EventRevision) RevisionView {
	payload := json.RawMessage(r.Payload)
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return RevisionView{Ref: r.Ref, CreatedAt: r.CreatedAt, Note: r.Note, Payload: payload}
}

// changedFields compares two JSON objects key by key.
func changedFields(a, b string) ([]string, error) {
	var left, right map[string]any
	if err := json.Unmarshal([]byte(a), &left); err != nil {
		return nil, fmt.Errorf("decode revision payload: %w", err)
	}
	if err := json.Unmarshal([]byte(b), &right); err != nil {
		return nil, fmt.Errorf("decode revision payload: %w", err)
	}
	changed := []string{}
	for k, lv := range left {
		rv, ok := right[k]
		if !ok || !cmp.Equal(lv, rv) {
			changed = append(changed, k)
		}
	}
	for k := range right {
		if _, ok := left[k]; !ok {
			changed = append(changed, k)
		}
	}
	sort.Strings(changed)
	return changed, nil
}

func clientName(e *domain.Event) *string {
	if e.Client == nil {
		return nil
	}
	return &e.Client.Name
}

func copyNotes(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func revisionErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNoRevision
	}
	return err
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrSlotTaken):
		return ErrSlotTaken
	default:
		return err
	}
}
