package postgres

import (
	"context"
	"errors"
	"fmt"

	"accounts-service/internal/domain/setting"
	"accounts-service/internal/infrastructure/database/postgres/models"

	"gorm.io/gorm"
)

// SettingRepository implements setting.Repository on postgres.
type SettingRepository struct {
	db *DB
}

func NewSettingRepository(db *DB) setting.Repository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context) (*setting.Setting, error) {
	var dbModel models.SettingModel
	err := r.db.DB.WithContext(ctx).First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &setting.Setting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &setting.Setting{AutoApproved: dbModel.AutoApproved}, nil
}
