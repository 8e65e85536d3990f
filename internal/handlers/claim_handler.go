package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lostfound_backend/internal/services"
	"lostfound_backend/internal/services/dto"
)

type ClaimHandler struct {
	*BaseHandler
	claimService *services.ClaimService
}

func NewClaimHandler(base *BaseHandler, claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{BaseHandler: base, claimService: claimService}
}

func (h *ClaimHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	claims := r.Group("/claims")
	claims.Use(authMW)
	{
		claims.POST("", h.SubmitClaim)
		claims.PUT("/:id/approve", h.ApproveClaim)
		claims.PUT("/:id/reject", h.RejectClaim)
		claims.GET("/item/:itemId", h.PendingForItem)
	}
}

func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClaimRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	claim, err := h.claimService.Submit(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"msg":   "Claim submitted successfully. The owner has been notified.",
		"claim": dto.NewClaimResponse(*claim),
	})
}

func (h *ClaimHandler) ApproveClaim(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	claim, item, err := h.claimService.Approve(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":   "Claim approved. The item has been marked as found.",
		"claim": dto.NewClaimResponse(*claim),
		"item":  item,
	})
}

func (h *ClaimHandler) RejectClaim(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	claim, err := h.claimService.Reject(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":   "Claim rejected.",
		"claim": dto.NewClaimResponse(*claim),
	})
}

// PendingForItem returns the pending claim for an item, or null when the
// item has none.
func (h *ClaimHandler) PendingForItem(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	claim, err := h.claimService.PendingForItem(h.GetDB(c), c.Param("itemId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, claim)
}
