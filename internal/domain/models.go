package domain

// Models lists every table managed by AutoMigrate, parents first.
func Models() []any {
	return []any{
		&Client{},
		&Venue{},
		&Material{},
		&MaterialSuggestion{},
		&SuggestionRule{},
		&Vehicle{},
		&Technician{},
		&Event{},
		&EventLine{},
		&CalendarSlot{},
		&EventRevision{},
	}
}
