package repository

import (
	"context"

	"gorm.io/gorm"

	"stockflow/internal/model"
)

// SectorRepository defines sector persistence operations.
type SectorRepository interface {
	List(ctx context.Context) ([]model.Sector, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type sectorRepository struct {
	db *gorm.DB
}

// NewSectorRepository creates a new sector repository.
func NewSectorRepository(db *gorm.DB) SectorRepository {
	return &sectorRepository{db: db}
}

// List returns all sectors ordered by name.
func (r *sectorRepository) List(ctx context.Context) ([]model.Sector, error) {
	var sectors []model.Sector
	if err := r.db.WithContext(ctx).Order("name").Find(&sectors).Error; err != nil {
		return nil, err
	}
	return sectors, nil
}

// Exists reports whether a sector with id exists.
func (r *sectorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Sector{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
