package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the service owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Contractor{},
		&Homeowner{},
		&WorkUnit{},
		&ContractorAreaPreference{},
		&ContractorUnitPreference{},
		&Booking{},
		&BookingUnit{},
		&BookingInvite{},
		&Quote{},
		&QuoteItem{},
		&MaterialUnit{},
		&Project{},
		&NotificationLog{},
	)
}
