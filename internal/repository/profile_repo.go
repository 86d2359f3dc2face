package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"funcity/internal/domain"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

type profileModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	Email     *string   `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone;index"`
	Role      string    `gorm:"column:role;type:varchar(20);default:'customer'"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

func toDomainProfile(m profileModel) *domain.Profile {
	var email, phone string
	if m.Email != nil {
		email = *m.Email
	}
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Profile{
		ID:        m.ID,
		Name:      m.Name,
		Email:     email,
		Phone:     phone,
		Role:      domain.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toProfileModel(p *domain.Profile) profileModel {
	var email, phone *string
	if v := strings.TrimSpace(strings.ToLower(p.Email)); v != "" {
		email = &v
	}
	if v := strings.TrimSpace(p.Phone); v != "" {
		phone = &v
	}
	role := string(p.Role)
	if role == "" {
		role = string(domain.RoleCustomer)
	}
	return profileModel{
		ID:        p.ID,
		Name:      strings.TrimSpace(p.Name),
		Email:     email,
		Phone:     phone,
		Role:      role,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*p = *toDomainProfile(m)
	return nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	var m profileModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toDomainProfile(m), nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	m := toProfileModel(p)
	res := r.db.WithContext(ctx).Model(&profileModel{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":       m.Name,
		"email":      m.Email,
		"phone":      m.Phone,
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
