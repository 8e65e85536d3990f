package dto

import (
	"time"

	"gorm.io/datatypes"

	"lostfound_backend/internal/models"
)

// ItemSummary is the minimal item projection expanded inline in
// notification listings.
type ItemSummary struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Type     models.ItemType `json:"type"`
}

type NotificationResponse struct {
	ID             string                  `json:"id"`
	Type           models.NotificationType `json:"type"`
	Sender         *models.PublicUser      `json:"sender,omitempty"`
	Item           *ItemSummary            `json:"item,omitempty"`
	Message        string                  `json:"message"`
	AdditionalInfo string                  `json:"additionalInfo"`
	Read           bool                    `json:"read"`
	ActionRequired bool                    `json:"actionRequired"`
	ClaimID        *string                 `json:"claimId"`
	Data           datatypes.JSON          `json:"data,omitempty"`
	CreatedAt      time.Time               `json:"createdAt"`
}

func NewNotificationResponse(n models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Message:        n.Message,
		AdditionalInfo: n.AdditionalInfo,
		Read:           n.Read,
		ActionRequired: n.ActionRequired,
		ClaimID:        n.ClaimID,
		Data:           n.Data,
		CreatedAt:      n.CreatedAt,
	}
	if n.Sender != nil {
		pub := n.Sender.Public()
		resp.Sender = &pub
	}
	if n.Item != nil {
		resp.Item = &ItemSummary{
			ID:       n.Item.ID,
			Name:     n.Item.Name,
			Category: n.Item.Category,
			Type:     n.Item.Type,
		}
	}
	return resp
}
