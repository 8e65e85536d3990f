package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationFoundClaim    NotificationType = "found_claim"
	NotificationClaimApproved NotificationType = "claim_approved"
	NotificationClaimRejected NotificationType = "claim_rejected"
	NotificationComment       NotificationType = "comment"
	NotificationItemUpdate    NotificationType = "item_update"
)

type Notification struct {
	BaseModel
	RecipientID string `gorm:"type:uuid;not null;index" json:"recipient"`
	Sender      *User  `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	SenderID    string `gorm:"type:uuid;not null" json:"-"`

	Type NotificationType `gorm:"type:varchar(20);not null" json:"type"`

	ItemID string `gorm:"type:uuid;not null;index" json:"-"`
	Item   *Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`

	Message        string `gorm:"not null" json:"message"`
	AdditionalInfo string `json:"additionalInfo"`
	Read           bool   `gorm:"default:false" json:"read"`
	ActionRequired bool   `gorm:"default:false" json:"actionRequired"`
	ClaimID        *string `gorm:"type:uuid" json:"claimId"`

	// Data holds the typed per-type payload variant.
	Data datatypes.JSON `json:"data,omitempty"`
}

// Typed notification payloads. One closed variant per notification type
// instead of free-text only; AdditionalInfo keeps the rendered string the
// client shows.

type FoundClaimData struct {
	FoundLocation string `json:"foundLocation"`
	FoundDate     string `json:"foundDate"`
	FoundTime     string `json:"foundTime"`
}

type ClaimDecisionData struct {
	ClaimID  string      `json:"claimId"`
	Decision ClaimStatus `json:"decision"`
}

type CommentData struct {
	CommentID string `json:"commentId"`
	Excerpt   string `json:"excerpt"`
}

// EncodePayload serializes a typed payload into the Data column.
func (n *Notification) EncodePayload(payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	n.Data = datatypes.JSON(raw)
	return nil
}
