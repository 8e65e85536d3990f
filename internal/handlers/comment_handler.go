package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lostfound_backend/internal/services"
	"lostfound_backend/internal/services/dto"
)

type CommentHandler struct {
	*BaseHandler
	commentService *services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	comments := r.Group("/comments")
	comments.Use(authMW)
	{
		comments.GET("/item/:itemId", h.ListForItem)
		comments.POST("", h.CreateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}
}

func (h *CommentHandler) ListForItem(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	comments, err := h.commentService.ListForItem(h.GetDB(c), c.Param("itemId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Comment deleted successfully"})
}
