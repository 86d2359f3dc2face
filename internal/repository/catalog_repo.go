package repository

import (
	"context"

	"funcity/internal/domain"

	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type rideModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description;type:text"`
	Price       float64 `gorm:"column:price;not null"`
	MinHeightCM int     `gorm:"column:min_height_cm"`
	ImageURL    string  `gorm:"column:image_url"`
	Active      bool    `gorm:"column:active;index"`
}

type dineItemModel struct {
	ID          int64   `gorm:"column:id;primaryKey"`
	Name        string  `gorm:"column:name;not null"`
	Description string  `gorm:"column:description;type:text"`
	Category    string  `gorm:"column:category"`
	Price       float64 `gorm:"column:price;not null"`
	Veg         bool    `gorm:"column:veg"`
	ImageURL    string  `gorm:"column:image_url"`
	Active      bool    `gorm:"column:active;index"`
}

func (r *CatalogRepository) ListRides(ctx context.Context, loc domain.Location) ([]domain.Ride, error) {
	var rows []rideModel
	if err := r.db.WithContext(ctx).Table(loc.RidesTable()).Where("active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Ride, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.Ride{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			MinHeightCM: m.MinHeightCM,
			ImageURL:    m.ImageURL,
			Active:      m.Active,
		})
	}
	return out, nil
}

func (r *CatalogRepository) ListDineItems(ctx context.Context, loc domain.Location) ([]domain.DineItem, error) {
	var rows []dineItemModel
	if err := r.db.WithContext(ctx).Table(loc.DineItemsTable()).Where("active = ?", true).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.DineItem, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.DineItem{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Category:    m.Category,
			Price:       m.Price,
			Veg:         m.Veg,
			ImageURL:    m.ImageURL,
			Active:      m.Active,
		})
	}
	return out, nil
}

func (r *CatalogRepository) CreateRide(ctx context.Context, loc domain.Location, ride *domain.Ride) error {
	m := rideModel{
		Name:        ride.Name,
		Description: ride.Description,
		Price:       ride.Price,
		MinHeightCM: ride.MinHeightCM,
		ImageURL:    ride.ImageURL,
		Active:      ride.Active,
	}
	if err := r.db.WithContext(ctx).Table(loc.RidesTable()).Create(&m).Error; err != nil {
		return err
	}
	ride.ID = m.ID
	return nil
}

func (r *CatalogRepository) CreateDineItem(ctx context.Context, loc domain.Location, item *domain.DineItem) error {
	m := dineItemModel{
		Name:        item.Name,
		Description: item.Description,
		Category:    item.Category,
		Price:       item.Price,
		Veg:         item.Veg,
		ImageURL:    item.ImageURL,
		Active:      item.Active,
	}
	if err := r.db.WithContext(ctx).Table(loc.DineItemsTable()).Create(&m).Error; err != nil {
		return err
	}
	item.ID = m.ID
	return nil
}
