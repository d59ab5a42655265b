package models

// All lists every persisted model, in creation order, for AutoMigrate in
// SQLite-backed dev mode and tests. Postgres schemas come from goose migrations.
func All() []any {
	return []any{
		&Company{},
		&User{},
		&Client{},
		&Event{},
		&TimelineEntry{},
		&Vendor{},
		&BudgetItem{},
		&ClientVendor{},
		&Guest{},
		&GuestHotel{},
		&GuestTransport{},
		&GuestGift{},
		&FloorPlan{},
		&FloorPlanTable{},
		&FloorPlanGuest{},
		&Document{},
		&Gift{},
		&GiftRegistryItem{},
		&Message{},
		&Payment{},
		&WeddingWebsite{},
		&ClientActivity{},
		&ClientUser{},
		&PipelineStage{},
		&Lead{},
		&PipelineActivity{},
	}
}
