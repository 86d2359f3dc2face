package repository

import (
	"fmt"

	"funcity/internal/domain"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the service reads and writes,
// including the per-location order and catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&profileModel{}, &domain.PaymentLedgerEntry{}); err != nil {
		return fmt.Errorf("migrate shared tables: %w", err)
	}
	for _, loc := range domain.Locations() {
		if err := db.Table(loc.OrdersTable()).AutoMigrate(&orderModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", loc.OrdersTable(), err)
		}
		if err := db.Table(loc.RidesTable()).AutoMigrate(&rideModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", loc.RidesTable(), err)
		}
		if err := db.Table(loc.DineItemsTable()).AutoMigrate(&dineItemModel{}); err != nil {
			return fmt.Errorf("migrate %s: %w", loc.DineItemsTable(), err)
		}
	}
	return nil
}
