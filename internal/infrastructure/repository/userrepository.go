package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"remedia/internal/domain/account"
	"remedia/internal/infrastructure/persistence/models"
	"remedia/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) account.UserRepository {
	return &UserRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*account.User, error) {
	if id == "" {
		return nil, account.ErrEmptyUserID
	}

	var model models.UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return account.ReconstructUser(model.ID, model.Email, model.Name, model.TrialEndsAt)
}
