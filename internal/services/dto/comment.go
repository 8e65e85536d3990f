package dto

import "lostfound_backend/internal/models"

type CreateCommentRequest struct {
	ItemID          string `json:"itemId" validate:"required"`
	Text            string `json:"text" validate:"required"`
	ParentCommentID string `json:"parentCommentId"`
}

// CommentResponse expands the commenter identity; top-level comments carry
// their direct replies oldest-first.
type CommentResponse struct {
	models.Comment
	User    *models.PublicUser `json:"userInfo,omitempty"`
	Replies []CommentResponse  `json:"replies,omitempty"`
}

func NewCommentResponse(comment models.Comment) CommentResponse {
	resp := CommentResponse{Comment: comment}
	if comment.User != nil {
		pub := comment.User.Public()
		resp.User = &pub
	}
	return resp
}
