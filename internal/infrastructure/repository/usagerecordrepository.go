package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"remedia/internal/domain/quota"
	"remedia/internal/infrastructure/persistence/models"
	"remedia/internal/shared/biztime"
	"remedia/internal/shared/logger"
)

type UsageRecordRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageRecordRepository(db *gorm.DB, logger logger.Interface) quota.UsageRecordRepository {
	return &UsageRecordRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *UsageRecordRepositoryImpl) GetOrCreate(ctx context.Context, identityID string, day time.Time) (*quota.UsageRecord, error) {
	if identityID == "" {
		return nil, quota.ErrEmptyIdentity
	}
	day = biztime.DateUTC(day)

	record, err := r.getByKey(ctx, identityID, day)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	// First access today: create the zeroed row. The insert is idempotent
	// on (identity_id, day), so losing the creation race to a concurrent
	// request just means the re-read below finds the winner's row.
	model := &models.UsageRecordModel{
		IdentityID: identityID,
		Day:        day,
	}
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identity_id"}, {Name: "day"}},
		DoNothing: true,
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to create usage record", "error", result.Error, "identity_id", identityID)
		return nil, fmt.Errorf("failed to create usage record: %w", result.Error)
	}

	record, err = r.getByKey(ctx, identityID, day)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("usage record missing after create for identity %s", identityID)
	}
	return record, nil
}

func (r *UsageRecordRepositoryImpl) IncrementBy(ctx context.Context, identityID string, day time.Time, usageType quota.UsageType, amount int) (*quota.UsageRecord, error) {
	if identityID == "" {
		return nil, quota.ErrEmptyIdentity
	}
	if !usageType.IsValid() {
		return nil, fmt.Errorf("invalid usage type: %s", usageType)
	}
	day = biztime.DateUTC(day)
	column := counterColumn(usageType)

	// Single atomic upsert-and-add: the database evaluates "col + amount"
	// under the unique index, so concurrent increments for the same
	// identity serialize at the row and none are lost.
	model := &models.UsageRecordModel{
		IdentityID: identityID,
		Day:        day,
	}
	setCounter(model, usageType, amount)

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "identity_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:       gorm.Expr(column+" + ?", amount),
			"updated_at": time.Now().UTC(),
		}),
	}).Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to increment usage", "error", result.Error, "identity_id", identityID, "usage_type", usageType.String())
		return nil, fmt.Errorf("failed to increment usage: %w", result.Error)
	}

	record, err := r.getByKey(ctx, identityID, day)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("usage record missing after increment for identity %s", identityID)
	}
	return record, nil
}

func (r *UsageRecordRepositoryImpl) GetRange(ctx context.Context, identityID string, from, to time.Time) ([]*quota.UsageRecord, error) {
	if identityID == "" {
		return nil, quota.ErrEmptyIdentity
	}

	var recordModels []*models.UsageRecordModel
	err := r.db.WithContext(ctx).
		Where("identity_id = ? AND day BETWEEN ? AND ?", identityID, biztime.DateUTC(from), biztime.DateUTC(to)).
		Order("day DESC").
		Find(&recordModels).Error
	if err != nil {
		r.logger.Errorw("failed to get usage range", "error", err, "identity_id", identityID)
		return nil, fmt.Errorf("failed to get usage range: %w", err)
	}

	return r.toEntities(recordModels)
}

func (r *UsageRecordRepositoryImpl) getByKey(ctx context.Context, identityID string, day time.Time) (*quota.UsageRecord, error) {
	var model models.UsageRecordModel
	err := r.db.WithContext(ctx).
		Where("identity_id = ? AND day = ?", identityID, day).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get usage record", "error", err, "identity_id", identityID)
		return nil, fmt.Errorf("failed to get usage record: %w", err)
	}
	return r.toEntity(&model)
}

func (r *UsageRecordRepositoryImpl) toEntity(model *models.UsageRecordModel) (*quota.UsageRecord, error) {
	if model == nil {
		return nil, nil
	}
	return quota.ReconstructUsageRecord(
		model.ID,
		model.IdentityID,
		biztime.DateUTC(model.Day),
		model.Searches,
		model.AISearches,
		model.Exports,
		model.Comparisons,
		model.UpdatedAt,
	)
}

func (r *UsageRecordRepositoryImpl) toEntities(recordModels []*models.UsageRecordModel) ([]*quota.UsageRecord, error) {
	records := make([]*quota.UsageRecord, 0, len(recordModels))
	for _, model := range recordModels {
		record, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert model ID %d: %w", model.ID, err)
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

func counterColumn(t quota.UsageType) string {
	switch t {
	case quota.UsageTypeAISearches:
		return "ai_searches"
	case quota.UsageTypeExports:
		return "exports"
	case quota.UsageTypeComparisons:
		return "comparisons"
	default:
		return "searches"
	}
}

func setCounter(model *models.UsageRecordModel, t quota.UsageType, amount int) {
	switch t {
	case quota.UsageTypeAISearches:
		model.AISearches = amount
	case quota.UsageTypeExports:
		model.Exports = amount
	case quota.UsageTypeComparisons:
		model.Comparisons = amount
	default:
		model.Searches = amount
	}
}
