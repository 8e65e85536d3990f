package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id string) (*models.Comment, error)
	ListTopLevelByItem(itemID string) ([]models.Comment, error)
	ListReplies(parentID string) ([]models.Comment, error)
	// DeleteWithReplies removes a comment and every direct reply to it.
	DeleteWithReplies(id string) error
	Delete(id string) error
	DeleteByItem(itemID string) error
}

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *CommentRepositoryImpl) FindByID(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Preload("User").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepositoryImpl) ListTopLevelByItem(itemID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("item_id = ? AND parent_comment_id IS NULL", itemID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepositoryImpl) ListReplies(parentID string) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.Preload("User").
		Where("parent_comment_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *CommentRepositoryImpl) DeleteWithReplies(id string) error {
	if err := r.db.Where("parent_comment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Comment{}).Error
}

func (r *CommentRepositoryImpl) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepositoryImpl) DeleteByItem(itemID string) error {
	return r.db.Where("item_id = ?", itemID).Delete(&models.Comment{}).Error
}
