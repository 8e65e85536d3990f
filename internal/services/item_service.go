package services

import (
	"context"

	"gorm.io/gorm"

	"lostfound_backend/internal/email"
	"lostfound_backend/internal/logger"
	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

type ItemService struct {
	mailer email.Sender
}

func NewItemService(mailer email.Sender) *ItemService {
	return &ItemService{mailer: mailer}
}

// Create persists a new report. contactEmail and reporter come from the
// authenticated user, never from client input; imagePath is the stored
// upload reference, empty when no file was attached.
func (s *ItemService) Create(db *gorm.DB, userID string, req *dto.CreateItemRequest, imagePath string) (*dto.ItemResponse, error) {
	userRepo := repositories.NewUserRepository(db)
	itemRepo := repositories.NewItemRepository(db)

	user, err := userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("items", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	item := &models.Item{
		Name:         req.Name,
		Category:     req.Category,
		Description:  req.Description,
		Location:     req.Location,
		Date:         req.Date,
		Time:         req.Time,
		Type:         models.ItemType(req.Type),
		ContactEmail: user.Email,
		Reporter:     user.Name,
		CreatedByID:  user.ID,
		ClaimStatus:  models.ItemUnclaimed,
	}
	if imagePath != "" {
		item.Image = &imagePath
	}

	if err := itemRepo.Create(item); err != nil {
		return nil, apperrors.InternalError(err)
	}

	item.CreatedBy = user
	resp := dto.NewItemResponse(*item)
	return &resp, nil
}

// ListByType returns all items of one type, newest first.
func (s *ItemService) ListByType(db *gorm.DB, itemType models.ItemType) ([]dto.ItemResponse, error) {
	itemRepo := repositories.NewItemRepository(db)

	items, err := itemRepo.ListByType(itemType)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewItemResponse(item))
	}
	return responses, nil
}

func (s *ItemService) GetByID(db *gorm.DB, id string) (*dto.ItemResponse, error) {
	itemRepo := repositories.NewItemRepository(db)

	item, err := itemRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.NewNotFoundError("items", "Item not found")
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewItemResponse(*item)
	return &resp, nil
}

// Delete removes an item and everything referencing it (claims, comments,
// notifications) in one transaction. Only the creator may delete.
func (s *ItemService) Delete(db *gorm.DB, userID, itemID string) error {
	itemRepo := repositories.NewItemRepository(db)

	item, err := itemRepo.FindByID(itemID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrItemNotFound) {
			return apperrors.NewNotFoundError("items", "Item not found")
		}
		return apperrors.InternalError(err)
	}

	if item.CreatedByID != userID {
		return apperrors.NewForbiddenError("items", "Not authorized to delete this item")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewClaimRepository(tx).DeleteByItem(itemID); err != nil {
			return err
		}
		if err := repositories.NewCommentRepository(tx).DeleteByItem(itemID); err != nil {
			return err
		}
		if err := repositories.NewNotificationRepository(tx).DeleteByItem(itemID); err != nil {
			return err
		}
		return repositories.NewItemRepository(tx).Delete(itemID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// MarkFound is the legacy shortcut that flips a lost item to found and
// emails the contact address, bypassing the claim workflow. It refuses to
// run while a claim is pending so the two paths cannot fight over the
// same item.
func (s *ItemService) MarkFound(db *gorm.DB, ctx context.Context, itemID string) (*dto.ItemResponse, error) {
	itemRepo := repositories.NewItemRepository(db)

	item, err := itemRepo.FindByID(itemID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrItemNotFound) {
			return nil, apperrors.NewNotFoundError("items", "Item not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if item.Type == models.ItemTypeFound {
		return nil, apperrors.NewConflictError("items", "This item is already marked as found")
	}
	if item.ClaimStatus == models.ItemPending {
		return nil, apperrors.NewConflictError("items", "A claim is pending for this item; resolve it instead")
	}

	// Email failure is logged and swallowed: notifying the owner is not
	// essential to the state change.
	subject, body := email.ItemFoundBody(item.Name, item.Location, item.Description)
	if err := s.mailer.Send(item.ContactEmail, subject, body); err != nil {
		logger.CtxWithError(ctx, "failed to send found-item email", err, "item_id", item.ID)
	}

	item.Type = models.ItemTypeFound
	if err := itemRepo.Save(item); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewItemResponse(*item)
	return &resp, nil
}
