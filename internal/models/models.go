package models

// All lists every model for AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Medicine{},
		&Reminder{},
		&MedicineLog{},
		&InsulinLog{},
		&Bookmark{},
		&SystemLog{},
	}
}
