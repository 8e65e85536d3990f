package services

import (
	"fmt"

	"gorm.io/gorm"

	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/pkg/apperrors"
)

// ClaimService mediates the found-item claim workflow between a claimant
// and an item's owner. Every cross-entity sequence (claim + item +
// notification) runs in one transaction, and the status flip itself is a
// conditional update so a stale read can never approve twice.
type ClaimService struct{}

func NewClaimService() *ClaimService {
	return &ClaimService{}
}

// Submit files a found-claim against a lost item.
// Preconditions, each with its own conflict error: the item exists, is
// still lost, the caller is not its creator, and no claim is pending.
func (s *ClaimService) Submit(db *gorm.DB, claimantID string, req *dto.CreateClaimRequest) (*models.Claim, error) {
	var claim *models.Claim

	err := db.Transaction(func(tx *gorm.DB) error {
		itemRepo := repositories.NewItemRepository(tx)
		claimRepo := repositories.NewClaimRepository(tx)
		userRepo := repositories.NewUserRepository(tx)

		item, err := itemRepo.FindByID(req.ItemID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrItemNotFound) {
				return apperrors.NewNotFoundError("claims", "Item not found")
			}
			return err
		}

		if item.Type != models.ItemTypeLost {
			return apperrors.NewConflictError("claims", "Can only claim lost items")
		}
		if item.CreatedByID == claimantID {
			return apperrors.NewConflictError("claims", "You cannot claim your own item")
		}

		existing, err := claimRepo.FindPendingByItem(req.ItemID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewConflictError("claims", "There is already a pending claim for this item")
		}

		claimant, err := userRepo.FindByID(claimantID)
		if err != nil {
			return err
		}

		claim = &models.Claim{
			ItemID:            item.ID,
			ClaimantID:        claimantID,
			OwnerID:           item.CreatedByID,
			FoundLocation:     req.FoundLocation,
			FoundDate:         req.FoundDate,
			FoundTime:         req.FoundTime,
			AdditionalDetails: req.AdditionalDetails,
			Status:            models.ClaimPending,
		}

		// The unique pending index backs up the existence check above; a
		// concurrent submit that slipped past it fails here.
		if err := claimRepo.Create(claim); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicatePendingClaim) {
				return apperrors.NewConflictError("claims", "There is already a pending claim for this item")
			}
			return err
		}

		item.ClaimStatus = models.ItemPending
		if err := itemRepo.Save(item); err != nil {
			return err
		}

		notification := &models.Notification{
			RecipientID:    item.CreatedByID,
			SenderID:       claimantID,
			Type:           models.NotificationFoundClaim,
			ItemID:         item.ID,
			Message:        fmt.Sprintf("%s claims to have found your lost item %q", claimant.Name, item.Name),
			AdditionalInfo: fmt.Sprintf("Location: %s | Date: %s at %s", req.FoundLocation, req.FoundDate, req.FoundTime),
			ActionRequired: true,
			ClaimID:        &claim.ID,
		}
		if err := notification.EncodePayload(models.FoundClaimData{
			FoundLocation: req.FoundLocation,
			FoundDate:     req.FoundDate,
			FoundTime:     req.FoundTime,
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

	return claim, nil
}

// Approve finalizes a claim: the claim flips to approved, the item becomes
// found with the claim's details and the finder's attribution, and the
// claimant is notified.
func (s *ClaimService) Approve(db *gorm.DB, callerID, claimID string) (*models.Claim, *models.Item, error) {
	var (
		claim *models.Claim
		item  *models.Item
	)

	err := db.Transaction(func(tx *gorm.DB) error {
		claimRepo := repositories.NewClaimRepository(tx)
		itemRepo := repositories.NewItemRepository(tx)

		var err error
		claim, err = s.authorizeDecision(claimRepo, callerID, claimID)
		if err != nil {
			return err
		}

		flipped, err := claimRepo.UpdateStatusIfPending(claimID, models.ClaimApproved)
		if err != nil {
			return err
		}
		if !flipped {
			return alreadyProcessed()
		}
		claim.Status = models.ClaimApproved

		item, err = itemRepo.FindByID(claim.ItemID)
		if err != nil {
			return err
		}

		item.Type = models.ItemTypeFound
		item.FoundByID = &claim.ClaimantID
		item.FoundLocation = &claim.FoundLocation
		item.FoundDate = &claim.FoundDate
		item.FoundTime = &claim.FoundTime
		item.ClaimStatus = models.ItemClaimed
		if claim.Claimant != nil {
			item.Reporter = claim.Claimant.Name
		}
		if err := itemRepo.Save(item); err != nil {
			return err
		}

		notification := &models.Notification{
			RecipientID:    claim.ClaimantID,
			SenderID:       callerID,
			Type:           models.NotificationClaimApproved,
			ItemID:         item.ID,
			Message:        fmt.Sprintf("Your claim for %q has been approved!", item.Name),
			AdditionalInfo: "The item has been marked as found with your details.",
		}
		if err := notification.EncodePayload(models.ClaimDecisionData{
			ClaimID:  claim.ID,
			Decision: models.ClaimApproved,
		}); err != nil {
			return err
		}

		return repositories.NewNotificationRepository(tx).Create(notification)
	})
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, nil, err
		}
		return nil, nil, apperrors.InternalError(err)
	}

	return claim, item, nil
}

// Reject declines a claim: the item reverts to unclaimed, its type stays
// lost, and the claimant is notified.
func (s *ClaimService) Reject(db *gorm.DB, callerID, claimID string) (*models.Claim, error) {
	var claim *models.Claim

	err := db.Transaction(func(tx *gorm.DB) error {
		claimRepo := repositories.NewClaimRepository(tx)
		itemRepo := repositories.NewItemRepository(tx)

		var err error
		claim, err = s.authorizeDecision(claimRepo, callerID, claimID)
		if err != nil {
			return err
		}

		flipped, err := claimRepo.UpdateStatusIfPending(claimID, models.ClaimRejected)
		if err != nil {
			return err
		}
		if !flipped {
			return alreadyProcessed()
		}
		claim.Status = models.ClaimRejected

		item, err := itemRepo.FindByID(claim.ItemID)
		if err != nil {
			return err
		}

		item.ClaimStatus = models.ItemUnclaimed
		if err := itemRepo.Save(item); err != nil {
			return err
		}

		notification := &models.Notification{
			RecipientID:    claim.ClaimantID,
			SenderID:       callerID,
			Type:           models.NotificationClaimRejected,
			ItemID:         item.ID,
			Message:        fmt.Sprintf("Your claim for %q has been declined", item.Name),
			AdditionalInfo: "The owner did not recognize this as their item.",
		}
		if err := notification.EncodePayload(models.ClaimDecisionData{
			ClaimID:  claim.ID,
			Decision: models.ClaimRejected,
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

	return claim, nil
}

// PendingForItem returns the single pending claim with identities
// expanded, or nil when none exists.
func (s *ClaimService) PendingForItem(db *gorm.DB, itemID string) (*dto.ClaimResponse, error) {
	claim, err := repositories.NewClaimRepository(db).FindPendingByItem(itemID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if claim == nil {
		return nil, nil
	}

	resp := dto.NewClaimResponse(*claim)
	return &resp, nil
}

// authorizeDecision loads the claim and checks the caller is the owner
// captured on it. The terminal-status check happens again at the write.
func (s *ClaimService) authorizeDecision(claimRepo repositories.ClaimRepository, callerID, claimID string) (*models.Claim, error) {
	claim, err := claimRepo.FindByID(claimID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrClaimNotFound) {
			return nil, apperrors.NewNotFoundError("claims", "Claim not found")
		}
		return nil, err
	}

	if claim.OwnerID != callerID {
		return nil, apperrors.NewForbiddenError("claims", "Not authorized to process this claim")
	}
	if claim.Status != models.ClaimPending {
		return nil, alreadyProcessed()
	}

	return claim, nil
}

func alreadyProcessed() *apperrors.AppError {
	return apperrors.New(apperrors.CodeInvalidStatus, "claims", "Claim has already been processed", 400)
}
