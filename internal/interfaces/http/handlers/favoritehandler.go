package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"remedia/internal/domain/favorite"
	"remedia/internal/domain/trust"
	"remedia/internal/interfaces/http/middleware"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// FavoriteHandler serves the ownership-protected favorites resource.
// Deletes go through the per-resource ownership check against the stored
// row, never just the route-level identity.
type FavoriteHandler struct {
	favoriteRepo favorite.Repository
	authorizer   *trust.OwnershipAuthorizer
	logger       logger.Interface
}

func NewFavoriteHandler(favoriteRepo favorite.Repository, authorizer *trust.OwnershipAuthorizer, logger logger.Interface) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepo: favoriteRepo,
		authorizer:   authorizer,
		logger:       logger,
	}
}

type favoriteResponse struct {
	ID        uint   `json:"id"`
	RemedyID  string `json:"remedy_id"`
	CreatedAt string `json:"created_at"`
}

func (h *FavoriteHandler) List(c *gin.Context) {
	callerUserID := c.GetString(middleware.ContextKeyUserID)

	identity, err := h.authorizer.VerifyRequestedIdentity(callerUserID, c.Query("user_id"), c.Query("session_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if identity.IsZero() {
		if callerUserID == "" {
			utils.ErrorResponseWithError(c, errors.NewInvalidInput("user_id or session_id is required"))
			return
		}
		identity = trust.NewUserIdentity(callerUserID)
	}

	var favorites []*favorite.Favorite
	if identity.IsAuthenticated() {
		favorites, err = h.favoriteRepo.ListByUser(c.Request.Context(), identity.UserID)
	} else {
		favorites, err = h.favoriteRepo.ListBySession(c.Request.Context(), identity.SessionID)
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]favoriteResponse, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, favoriteResponse{
			ID:        f.ID(),
			RemedyID:  f.RemedyID(),
			CreatedAt: f.CreatedAt().UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	utils.OKResponse(c, gin.H{"favorites": items})
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("invalid favorite ID"))
		return
	}

	ctx := c.Request.Context()
	stored, err := h.favoriteRepo.GetByID(ctx, uint(id))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if stored == nil {
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("favorite not found"))
		return
	}

	callerUserID := c.GetString(middleware.ContextKeyUserID)
	requestSessionID := c.Query("session_id")

	if err := h.authorizer.VerifyResourceOwner(callerUserID, stored.UserID(), stored.SessionID(), requestSessionID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.favoriteRepo.Delete(ctx, stored.ID()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "favorite deleted", gin.H{"id": stored.ID()})
}
