package services

import (
	"errors"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"gorm.io/gorm"
)

// findByID loads one row by primary key, mapping a miss to notFound.
func findByID(db *gorm.DB, dest interface{}, id uint, notFound *apperr.Error) error {
	err := db.First(dest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if err != nil {
		return apperr.Internal("failed to load record", err)
	}
	return nil
}

// ensureExists checks that a row of model with the given id exists.
func ensureExists(db *gorm.DB, model interface{}, id uint, notFound *apperr.Error) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperr.Internal("failed to look up record", err)
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// updates collects the columns of a partial update.
type updates map[string]interface{}

func (u updates) setString(column string, v *string) {
	if v != nil {
		u[column] = *v
	}
}

func (u updates) setBool(column string, v *bool) {
	if v != nil {
		u[column] = *v
	}
}

func apply(db *gorm.DB, model interface{}, u updates) error {
	if len(u) == 0 {
		return nil
	}
	if err := db.Model(model).Updates(map[string]interface{}(u)).Error; err != nil {
		return apperr.Internal("failed to update record", err)
	}
	return nil
}

func wrapInternal(what string, err error) error {
	if err == nil {
		return nil
	}
	return apperr.Internal("failed to "+what, err)
}
