// Package directory answers existence checks for customers and employees.
package directory

import (
	"context"

	"textile/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

type EmployeeDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(255);not null"`
}

func (EmployeeDTO) TableName() string {
	return "employees"
}

type GormDirectory struct {
	db *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory {
	return &GormDirectory{db: db}
}

func (d *GormDirectory) CustomerExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, &CustomerDTO{}, id)
}

func (d *GormDirectory) EmployeeExists(ctx context.Context, id kernel.UUID) (bool, error) {
	return d.exists(ctx, &EmployeeDTO{}, id)
}

func (d *GormDirectory) exists(ctx context.Context, model any, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}
	var count int64
	if err := d.db.WithContext(ctx).Model(model).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
