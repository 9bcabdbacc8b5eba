package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"remedia/internal/domain/account"
	"remedia/internal/domain/quota"
	"remedia/internal/infrastructure/persistence/models"
	"remedia/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) account.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*account.Subscription, error) {
	if userID == "" {
		return nil, account.ErrEmptyUserID
	}

	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return account.ReconstructSubscription(
		model.ID,
		model.UserID,
		quota.PlanTier(model.Plan),
		account.SubscriptionStatus(model.Status),
		model.UpdatedAt,
	)
}
