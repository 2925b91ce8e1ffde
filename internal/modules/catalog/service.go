package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"eventhire/internal/availability"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

const (
	SearchLimit  = 300
	siblingLimit = 10
	bonusLimit   = 2
	noCategory   = "—"
)

type Service struct {
	materials MaterialRepository
	bookings  BookingReader
	engine    availability.Engine
}

func NewService(materials MaterialRepository, bookings BookingReader, engine availability.Engine) *Service {
	return &Service{materials: materials, bookings: bookings, engine: engine}
}

func (s *Service) List(ctx context.Context, kind repository.MaterialKind, search string, includeArchived bool) ([]domain.Material, error) {
	return s.materials.List(ctx, repository.MaterialFilter{Search: search, Kind: kind, IncludeArchived: includeArchived})
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	return m, mapErr(err)
}

// Create stores a material. The technician and vehicle views force their
// flag: technicians carry no stock, a vehicle counts as one unit.
func (s *Service) Create(ctx context.Context, kind repository.MaterialKind, req MaterialRequest) (*domain.Material, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	m := &domain.Material{}
	applyMaterial(m, req)
	forceKind(m, kind)

	if err := s.materials.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, kind repository.MaterialKind, id int64, req MaterialRequest) (*domain.Material, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	m, err := s.materials.GetByID(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	applyMaterial(m, req)
	switch kind {
	case repository.KindTechnician:
		m.IsTechnician = true
	case repository.KindVehicle:
		m.IsVehicle = true
	}
	if err := s.materials.Update(ctx, m); err != nil {
		return nil, mapErr(err)
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return mapErr(s.materials.Delete(ctx, id))
}

func (s *Service) Categories(ctx context.Context) ([]repository.CategoryNode, error) {
	return s.materials.Categories(ctx)
}

// Search lists up to SearchLimit catalog items with their availability over
// the requested window. Without dates nothing is considered booked.
func (s *Service) Search(ctx context.Context, p SearchParams) ([]SearchItem, error) {
	mats, err := s.materials.List(ctx, repository.MaterialFilter{
		Search:      p.Term,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Limit:       SearchLimit,
	})
	if err != nil {
		return nil, err
	}

	from, to := p.From, p.To
	if from == nil {
		from = to
	}
	if to == nil {
		to = from
	}

	var grouped map[int64][]availability.Interval
	var window availability.Window
	if from != nil && len(mats) > 0 {
		window = availability.NewWindow(*from, *to)
		grouped, err = s.demand(ctx, window, materialIDs(mats), p.VenueID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]SearchItem, 0, len(mats))
	for _, m := range mats {
		item := SearchItem{
			ID:           m.ID,
			Category:     orDash(m.CategoryName()),
			Subcategory:  orDash(m.SubcategoryName()),
			Name:         m.Name,
			Price:        m.BasePrice,
			Stock:        m.Stock,
			Available:    m.Stock,
			UnitLabel:    m.UnitLabel,
			IsTechnician: m.IsTechnician,
			IsVehicle:    m.IsVehicle,
		}
		if grouped != nil {
			sum := availability.Summarize(m.Stock, grouped[m.ID], window, nil)
			item.Booked = sum.BookedMax
			item.Available = sum.Available
		}
		item.Status = s.engine.StatusFor(item.Available)
		out = append(out, item)
	}
	return out, nil
}

// Suggest proposes materials to add next to trigger: curated links, category
// rules, siblings from the same subcategory (or category when there are
// none), then a couple of technicians and vehicles. on selects the day used
// for the availability figures; without it nothing is considered booked.
func (s *Service) Suggest(ctx context.Context, triggerID int64, on *dates.Date) ([]SuggestionItem, error) {
	trigger, err := s.materials.GetByID(ctx, triggerID)
	if err != nil {
		return nil, mapErr(err)
	}

	var out []SuggestionItem
	seen := map[int64]bool{trigger.ID: true}
	add := func(m domain.Material, qty int, label string) {
		if seen[m.ID] || m.IsArchived {
			return
		}
		seen[m.ID] = true
		if qty < 1 {
			qty = 1
		}
		out = append(out, SuggestionItem{
			MaterialID:   m.ID,
			Name:         m.Name,
			Price:        m.BasePrice,
			QtyDefault:   qty,
			Label:        label,
			IsTechnician: m.IsTechnician,
			IsVehicle:    m.IsVehicle,
			Available:    m.Stock,
		})
	}

	links, err := s.materials.ActiveSuggestions(ctx, trigger.ID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.Suggested != nil {
			add(*link.Suggested, link.QtyDefault, link.Label)
		}
	}

	category, subcategory := trigger.CategoryName(), trigger.SubcategoryName()
	if category != "" {
		rules, err := s.materials.MatchingRules(ctx, category, subcategory)
		if err != nil {
			return nil, err
		}
		for _, rule := range rules {
			mats, err := s.materials.List(ctx, repository.MaterialFilter{
				Category:    rule.SuggestCategory,
				Subcategory: rule.SuggestSubcategory,
				Limit:       siblingLimit,
			})
			if err != nil {
				return nil, err
			}
			label := rule.Label
			if label == "" {
				label = rule.SuggestCategory
			}
			for _, m := range mats {
				add(m, rule.QtyDefault, label)
			}
		}

		var same []domain.Material
		if subcategory != "" {
			same, err = s.materials.Siblings(ctx, trigger.ID, category, subcategory, siblingLimit)
			if err != nil {
				return nil, err
			}
			for _, m := range same {
				add(m, 1, "Stessa sottocategoria")
			}
		}
		if len(same) == 0 {
			same, err = s.materials.Siblings(ctx, trigger.ID, category, "", siblingLimit)
			if err != nil {
				return nil, err
			}
			for _, m := range same {
				add(m, 1, "Stessa categoria")
			}
		}
	}

	techs, err := s.materials.List(ctx, repository.MaterialFilter{Kind: repository.KindTechnician})
	if err != nil {
		return nil, err
	}
	added := 0
	for _, m := range byName(techs) {
		if added == bonusLimit {
			break
		}
		if !seen[m.ID] {
			add(m, 1, "Tecnico")
			added++
		}
	}

	vans, err := s.materials.List(ctx, repository.MaterialFilter{Kind: repository.KindVehicle})
	if err != nil {
		return nil, err
	}
	added = 0
	for _, m := range byName(vans) {
		if added == bonusLimit {
			break
		}
		if !seen[m.ID] {
			add(m, 1, "Trasporto / Messo")
			added++
		}
	}

	if on != nil && len(out) > 0 {
		ids := make([]int64, len(out))
		for i, it := range out {
			ids[i] = it.MaterialID
		}
		window := availability.NewWindow(*on, *on)
		grouped, err := s.demand(ctx, window, ids, 0)
		if err != nil {
			return nil, err
		}
		for i := range out {
			sum := availability.Summarize(out[i].Available, grouped[out[i].MaterialID], window, on)
			out[i].Booked = sum.BookedOn
			out[i].Available = sum.Available
		}
	}
	if out == nil {
		out = []SuggestionItem{}
	}
	return out, nil
}

func (s *Service) LinkSuggestion(ctx context.Context, triggerID int64, req SuggestionLinkRequest) (*domain.MaterialSuggestion, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	if req.SuggestedID == triggerID {
		return nil, fmt.Errorf("%w: a material cannot suggest itself", ErrValidation)
	}
	for _, id := range []int64{triggerID, req.SuggestedID} {
		if _, err := s.materials.GetByID(ctx, id); err != nil {
			return nil, mapErr(err)
		}
	}
	link := &domain.MaterialSuggestion{
		TriggerID:   triggerID,
		SuggestedID: req.SuggestedID,
		QtyDefault:  max(1, req.QtyDefault),
		Label:       req.Label,
		Active:      true,
	}
	if err := s.materials.CreateSuggestion(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *Service) CreateRule(ctx context.Context, req RuleRequest) (*domain.SuggestionRule, error) {
	if err := validator.Check(&req); err != nil {
		return nil, err
	}
	rule := &domain.SuggestionRule{
		TriggerCategory:    strings.TrimSpace(req.TriggerCategory),
		TriggerSubcategory: strings.TrimSpace(req.TriggerSubcategory),
		SuggestCategory:    strings.TrimSpace(req.SuggestCategory),
		SuggestSubcategory: strings.TrimSpace(req.SuggestSubcategory),
		QtyDefault:         max(1, req.QtyDefault),
		Label:              req.Label,
		Active:             true,
	}
	if err := s.materials.CreateRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// SuggestByGuests sizes crew and vehicles from the number of guests and the
// amount of set-up work, then picks the cheapest matching catalog item for
// each role. Halves round to even.
func (s *Service) SuggestByGuests(ctx context.Context, p GuestParams) (*GuestSuggestions, error) {
	if p.Guests < 0 || p.Setups < 0 || p.Km < 0 || p.Hours < 0 {
		return nil, fmt.Errorf("%w: parameters must not be negative", ErrValidation)
	}
	if p.Hours == 0 {
		p.Hours = 8
	}

	techs := max(1, int(math.RoundToEven(float64(p.Guests)/80)+math.RoundToEven(float64(p.Setups)/10)))
	chiefs := 0
	if p.Guests > 150 || techs >= 3 {
		chiefs = 1
	}
	vehicles := max(1, int(math.RoundToEven((float64(techs)+float64(p.Setups)/8)/2)))
	drivers := vehicles

	res := &GuestSuggestions{
		Params:      p,
		Technicians: techs,
		Chiefs:      chiefs,
		Vehicles:    vehicles,
		Drivers:     drivers,
		Items:       []GuestSuggestion{},
	}

	mats, err := s.materials.List(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}

	picks := []struct {
		category string
		qty      int
		match    func(domain.Material) bool
	}{
		{"TECNICO", techs, isTechnicianItem},
		{"TECNICO", chiefs, func(m domain.Material) bool {
			return isTechnicianCategory(m) && nameHas(m, "capo", "chief", "responsabile")
		}},
		{"MEZZI", vehicles, isVehicleItem},
		{"MEZZI", drivers, func(m domain.Material) bool {
			return isTechnicianCategory(m) && nameHas(m, "autista", "driver")
		}},
	}
	for _, p := range picks {
		if p.qty < 1 {
			continue
		}
		if m, ok := cheapest(mats, p.match); ok {
			res.Items = append(res.Items, GuestSuggestion{Category: p.category, MaterialID: m.ID, Name: m.Name, Qty: p.qty})
		}
	}
	return res, nil
}

// demand loads booked lines for ids over w, optionally restricted to one
// venue, grouped per material.
func (s *Service) demand(ctx context.Context, w availability.Window, ids []int64, venueID int64) (map[int64][]availability.Interval, error) {
	rows, err := s.bookings.BookedLines(ctx, w.From, w.To, ids)
	if err != nil {
		return nil, err
	}
	items := make([]availability.MaterialInterval, 0, len(rows))
	for _, r := range rows {
		if venueID > 0 && r.VenueID != venueID {
			continue
		}
		items = append(items, availability.MaterialInterval{MaterialID: r.MaterialID, Interval: r.Interval()})
	}
	return availability.GroupByMaterial(items), nil
}

func applyMaterial(m *domain.Material, req MaterialRequest) {
	m.Name = strings.TrimSpace(req.Name)
	m.Category = trimmed(req.Category)
	m.Subcategory = trimmed(req.Subcategory)
	m.ImageURL = req.ImageURL
	m.BasePrice = decimal.Zero
	if req.BasePrice != nil {
		m.BasePrice = *req.BasePrice
	}
	if req.UnitLabel != "" {
		m.UnitLabel = req.UnitLabel
	}
	if m.UnitLabel == "" {
		m.UnitLabel = domain.UnitPiece
	}
	if req.Stock != nil {
		m.Stock = *req.Stock
	}
	m.IsTechnician = req.IsTechnician
	m.IsVehicle = req.IsVehicle
	m.IsDefaultService = req.IsDefaultService
	m.IsArchived = req.IsArchived
}

func forceKind(m *domain.Material, kind repository.MaterialKind) {
	switch kind {
	case repository.KindTechnician:
		m.IsTechnician, m.IsVehicle = true, false
		m.Stock = 0
		if m.UnitLabel == domain.UnitPiece {
			m.UnitLabel = domain.UnitHour
		}
	case repository.KindVehicle:
		m.IsVehicle, m.IsTechnician = true, false
		m.Stock = 1
		if m.UnitLabel == domain.UnitPiece {
			m.UnitLabel = domain.UnitKm
		}
	}
}

func isTechnicianCategory(m domain.Material) bool {
	return m.IsTechnician || strings.EqualFold(m.CategoryName(), "TECNICO")
}

func isTechnicianItem(m domain.Material) bool {
	return isTechnicianCategory(m) || nameHas(m, "tecnico")
}

func isVehicleItem(m domain.Material) bool {
	cat := strings.ToUpper(m.CategoryName())
	return m.IsVehicle || cat == "MEZZI" || cat == "AUTO" || nameHas(m, "furgone", "van", "camion")
}

func nameHas(m domain.Material, words ...string) bool {
	name := strings.ToLower(m.Name)
	for _, w := range words {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func cheapest(mats []domain.Material, match func(domain.Material) bool) (domain.Material, bool) {
	var best domain.Material
	found := false
	for _, m := range mats {
		if !match(m) {
			continue
		}
		if !found || m.BasePrice.LessThan(best.BasePrice) || (m.BasePrice.Equal(best.BasePrice) && m.ID < best.ID) {
			best, found = m, true
		}
	}
	return best, found
}

func byName(mats []domain.Material) []domain.Material {
	out := append([]domain.Material(nil), mats...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func materialIDs(mats []domain.Material) []int64 {
	ids := make([]int64, len(mats))
	for i, m := range mats {
		ids[i] = m.ID
	}
	return ids
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func orDash(s string) string {
	if s == "" {
		return noCategory
	}
	return s
}

func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrInUse
	default:
		return err
	}
}
