package repositories

import (
	"errors"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
)

var (
	ErrClaimNotFound = errors.New("claim not found")
	// ErrDuplicatePendingClaim surfaces the partial unique index on
	// (item_id) WHERE status='pending'.
	ErrDuplicatePendingClaim = errors.New("a pending claim already exists for this item")
)

type ClaimRepository interface {
	Create(claim *models.Claim) error
	FindByID(id string) (*models.Claim, error)
	FindPendingByItem(itemID string) (*models.Claim, error)
	// UpdateStatusIfPending flips the status only when the row still reads
	// 'pending' at the instant of the write. Returns false when the claim
	// was already processed (or is gone).
	UpdateStatusIfPending(id string, status models.ClaimStatus) (bool, error)
	DeleteByItem(itemID string) error
}

type ClaimRepositoryImpl struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &ClaimRepositoryImpl{db: db}
}

func (r *ClaimRepositoryImpl) Create(claim *models.Claim) error {
	if err := r.db.Create(claim).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePendingClaim
		}
		return err
	}
	return nil
}

func (r *ClaimRepositoryImpl) FindByID(id string) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.Preload("Item").Preload("Claimant").First(&claim, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepositoryImpl) FindPendingByItem(itemID string) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.Preload("Claimant").Preload("Owner").
		First(&claim, "item_id = ? AND status = ?", itemID, models.ClaimPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

func (r *ClaimRepositoryImpl) UpdateStatusIfPending(id string, status models.ClaimStatus) (bool, error) {
	result := r.db.Model(&models.Claim{}).
		Where("id = ? AND status = ?", id, models.ClaimPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ClaimRepositoryImpl) DeleteByItem(itemID string) error {
	return r.db.Where("item_id = ?", itemID).Delete(&models.Claim{}).Error
}
