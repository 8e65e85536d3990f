package models

type ClaimStatus string

// Claim lifecycle: pending -> approved | rejected, terminal thereafter.
const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

type Claim struct {
	BaseModel
	// The partial unique index closes the check-then-insert race: at most
	// one pending claim can ever exist per item, no matter how submits
	// interleave.
	ItemID string `gorm:"type:uuid;not null;index:idx_claims_one_pending,unique,where:status = 'pending'" json:"item"`
	Item   *Item  `gorm:"foreignKey:ItemID" json:"-"`

	ClaimantID string `gorm:"type:uuid;not null;index" json:"claimant"`
	Claimant   *User  `gorm:"foreignKey:ClaimantID" json:"-"`

	// OwnerID is copied from item.CreatedByID at creation time and is the
	// sole authority for approve/reject.
	OwnerID string `gorm:"type:uuid;not null;index" json:"owner"`
	Owner   *User  `gorm:"foreignKey:OwnerID" json:"-"`

	FoundLocation     string `gorm:"not null" json:"foundLocation"`
	FoundDate         string `gorm:"not null" json:"foundDate"`
	FoundTime         string `gorm:"not null" json:"foundTime"`
	AdditionalDetails string `json:"additionalDetails"`

	Status ClaimStatus `gorm:"type:varchar(10);not null;default:pending" json:"status"`
}
