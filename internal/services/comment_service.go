package services

import (
	"fmt"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

// commentExcerptLen caps how much comment text a notification carries.
const commentExcerptLen = 100

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

// ListForItem returns top-level comments newest-first, each with its
// direct replies oldest-first.
func (s *CommentService) ListForItem(db *gorm.DB, itemID string) ([]dto.CommentResponse, error) {
	commentRepo := repositories.NewCommentRepository(db)

	topLevel, err := commentRepo.ListTopLevelByItem(itemID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.CommentResponse, 0, len(topLevel))
	for _, comment := range topLevel {
		resp := dto.NewCommentResponse(comment)

		replies, err := commentRepo.ListReplies(comment.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		for _, reply := range replies {
			resp.Replies = append(resp.Replies, dto.NewCommentResponse(reply))
		}

		responses = append(responses, resp)
	}
	return responses, nil
}

// Create adds a comment or a reply. Replying to a reply attaches to the
// reply's top-level parent instead, keeping the thread exactly one level
// deep. Commenting on someone else's item notifies the creator.
func (s *CommentService) Create(db *gorm.DB, userID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	var created *dto.CommentResponse

	err := db.Transaction(func(tx *gorm.DB) error {
		itemRepo := repositories.NewItemRepository(tx)
		commentRepo := repositories.NewCommentRepository(tx)
		userRepo := repositories.NewUserRepository(tx)

		item, err := itemRepo.FindByID(req.ItemID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrItemNotFound) {
				return apperrors.NewNotFoundError("comments", "Item not found")
			}
			return err
		}

		var parentID *string
		if req.ParentCommentID != "" {
			parent, err := commentRepo.FindByID(req.ParentCommentID)
			if err != nil {
				if apperrors.Is(err, repositories.ErrCommentNotFound) {
					return apperrors.NewNotFoundError("comments", "Parent comment not found")
				}
				return err
			}
			// Depth cap: a reply's parent is always a top-level comment.
			if parent.ParentCommentID != nil {
				parentID = parent.ParentCommentID
			} else {
				parentID = &parent.ID
			}
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			return err
		}

		comment := &models.Comment{
			ItemID:          item.ID,
			UserID:          userID,
			Text:            req.Text,
			ParentCommentID: parentID,
		}
		if err := commentRepo.Create(comment); err != nil {
			return err
		}

		comment.User = user
		resp := dto.NewCommentResponse(*comment)
		created = &resp

		if item.CreatedByID == userID {
			return nil
		}

		notification := &models.Notification{
			RecipientID:    item.CreatedByID,
			SenderID:       userID,
			Type:           models.NotificationComment,
			ItemID:         item.ID,
			Message:        fmt.Sprintf("%s commented on your %s item %q", user.Name, item.Type, item.Name),
			AdditionalInfo: truncate(req.Text, commentExcerptLen),
		}
		if err := notification.EncodePayload(models.CommentData{
			CommentID: comment.ID,
			Excerpt:   truncate(req.Text, commentExcerptLen),
		}); err != nil {
			return err
		}

		return repositories.NewNotificationRepository(tx).Create(notification)
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.InternalError(err)
	}

	return created, nil
}

// Delete removes the author's own comment. Deleting a top-level comment
// cascades to its direct replies; deleting a reply removes only itself.
func (s *CommentService) Delete(db *gorm.DB, userID, commentID string) error {
	commentRepo := repositories.NewCommentRepository(db)

	comment, err := commentRepo.FindByID(commentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.NewNotFoundError("comments", "Comment not found")
		}
		return apperrors.InternalError(err)
	}

	if comment.UserID != userID {
		return apperrors.NewForbiddenError("comments", "Not authorized to delete this comment")
	}

	if comment.ParentCommentID != nil {
		if err := commentRepo.Delete(commentID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return repositories.NewCommentRepository(tx).DeleteWithReplies(commentID)
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
