package dto

import "lostfound_backend/internal/models"

type CreateClaimRequest struct {
	ItemID            string `json:"itemId" validate:"required"`
	FoundLocation     string `json:"foundLocation" validate:"required"`
	FoundDate         string `json:"foundDate" validate:"required"`
	FoundTime         string `json:"foundTime" validate:"required"`
	AdditionalDetails string `json:"additionalDetails"`
}

// ClaimResponse expands claimant and owner identities for the pending
// claim view.
type ClaimResponse struct {
	models.Claim
	Claimant *models.PublicUser `json:"claimantInfo,omitempty"`
	Owner    *models.PublicUser `json:"ownerInfo,omitempty"`
}

func NewClaimResponse(claim models.Claim) ClaimResponse {
	resp := ClaimResponse{Claim: claim}
	if claim.Claimant != nil {
		pub := claim.Claimant.Public()
		resp.Claimant = &pub
	}
	if claim.Owner != nil {
		pub := claim.Owner.Public()
		resp.Owner = &pub
	}
	return resp
}
