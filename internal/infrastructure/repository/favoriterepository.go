package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"remedia/internal/domain/favorite"
	"remedia/internal/infrastructure/persistence/models"
	"remedia/internal/shared/logger"
)

type FavoriteRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewFavoriteRepository(db *gorm.DB, logger logger.Interface) favorite.Repository {
	return &FavoriteRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *FavoriteRepositoryImpl) GetByID(ctx context.Context, id uint) (*favorite.Favorite, error) {
	var model models.FavoriteModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get favorite", "error", err, "favorite_id", id)
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}
	return r.toEntity(&model)
}

func (r *FavoriteRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.FavoriteModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete favorite", "error", result.Error, "favorite_id", id)
		return fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return nil
}

func (r *FavoriteRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]*favorite.Favorite, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *FavoriteRepositoryImpl) ListBySession(ctx context.Context, sessionID string) ([]*favorite.Favorite, error) {
	return r.list(ctx, "session_id = ?", sessionID)
}

// CountByIdentity counts favorites for an identity key of the form
// "user:<id>" or "session:<id>".
func (r *FavoriteRepositoryImpl) CountByIdentity(ctx context.Context, identityID string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FavoriteModel{})
	switch {
	case strings.HasPrefix(identityID, "user:"):
		query = query.Where("user_id = ?", strings.TrimPrefix(identityID, "user:"))
	case strings.HasPrefix(identityID, "session:"):
		query = query.Where("session_id = ?", strings.TrimPrefix(identityID, "session:"))
	default:
		return 0, fmt.Errorf("malformed identity key: %s", identityID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count favorites", "error", err, "identity_id", identityID)
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

func (r *FavoriteRepositoryImpl) list(ctx context.Context, cond string, arg string) ([]*favorite.Favorite, error) {
	var favoriteModels []*models.FavoriteModel
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Find(&favoriteModels).Error
	if err != nil {
		r.logger.Errorw("failed to list favorites", "error", err)
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favorites := make([]*favorite.Favorite, 0, len(favoriteModels))
	for _, model := range favoriteModels {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert model ID %d: %w", model.ID, err)
		}
		favorites = append(favorites, entity)
	}
	return favorites, nil
}

func (r *FavoriteRepositoryImpl) toEntity(model *models.FavoriteModel) (*favorite.Favorite, error) {
	if model == nil {
		return nil, nil
	}
	return favorite.ReconstructFavorite(model.ID, model.UserID, model.SessionID, model.RemedyID, model.CreatedAt)
}
