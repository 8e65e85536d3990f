package dto

import "lostfound_backend/internal/models"

// CreateItemRequest arrives as multipart form fields; the optional image
// file is handled separately by the handler.
type CreateItemRequest struct {
	Name        string `form:"name" validate:"required"`
	Category    string `form:"category" validate:"required"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Date        string `form:"date" validate:"required"`
	Time        string `form:"time" validate:"required"`
	Type        string `form:"type" validate:"required,oneof=lost found"`
}

type ListItemsRequest struct {
	Type string `form:"type" validate:"required,oneof=lost found"`
}

// ItemResponse is an Item annotated with the creator's current display
// name as reporter ("Anonymous" when the creator is unresolved).
type ItemResponse struct {
	models.Item
	Reporter string `json:"reporter"`
}

func NewItemResponse(item models.Item) ItemResponse {
	reporter := "Anonymous"
	switch {
	case item.ClaimStatus == models.ItemClaimed && item.Reporter != "":
		// After approval the finder owns the display attribution; keep
		// the snapshot written by the claim workflow.
		reporter = item.Reporter
	case item.CreatedBy != nil && item.CreatedBy.Name != "":
		reporter = item.CreatedBy.Name
	case item.Reporter != "":
		reporter = item.Reporter
	}
	return ItemResponse{Item: item, Reporter: reporter}
}
