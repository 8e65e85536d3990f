package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lostfound_backend/internal/models"
	"lostfound_backend/internal/services"
	"lostfound_backend/internal/services/dto"
	"lostfound_backend/internal/storage"
	"lostfound_backend/pkg/apperrors"
)

// UploadConfig limits what the item image field accepts.
type UploadConfig struct {
	MaxSize      int64
	AllowedTypes []string
}

type ItemHandler struct {
	*BaseHandler
	itemService *services.ItemService
	storage     storage.Storage
	upload      UploadConfig
}

func NewItemHandler(base *BaseHandler, itemService *services.ItemService, store storage.Storage, upload UploadConfig) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		itemService: itemService,
		storage:     store,
		upload:      upload,
	}
}

func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup, authMW gin.HandlerFunc) {
	items := r.Group("/items")
	items.Use(authMW)
	{
		items.GET("", h.ListItems)
		items.POST("", h.CreateItem)
		items.GET("/:id", h.GetItem)
		items.POST("/found/:id", h.MarkFound)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *ItemHandler) ListItems(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.ListItemsRequest
	if !h.BindAndValidateQuery(c, &req) {
		return
	}

	items, err := h.itemService.ListByType(h.GetDB(c), models.ItemType(req.Type))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateItemRequest
	if !h.BindAndValidateForm(c, &req) {
		return
	}

	imagePath, err := h.saveImage(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	item, err := h.itemService.Create(h.GetDB(c), userID, &req, imagePath)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	label := "Found"
	if item.Type == models.ItemTypeLost {
		label = "Lost"
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg":  fmt.Sprintf("%s item created successfully", label),
		"item": item,
	})
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	item, err := h.itemService.GetByID(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) MarkFound(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	item, err := h.itemService.MarkFound(h.GetDB(c), c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg":  "Owner notified successfully",
		"item": item,
	})
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.itemService.Delete(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Item deleted successfully"})
}

// saveImage stores the optional multipart image field and returns its
// public URL; an absent field is not an error.
func (h *ItemHandler) saveImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", apperrors.NewBadRequestError("Invalid image upload: " + err.Error())
	}
	defer file.Close()

	if header.Size > h.upload.MaxSize {
		return "", apperrors.NewBadRequestError(fmt.Sprintf("Image exceeds the %d byte limit", h.upload.MaxSize))
	}
	if err := h.checkImageType(header); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("image-%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(header.Filename)))
	if err := h.storage.Save(c.Request.Context(), filename, file); err != nil {
		return "", apperrors.InternalError(err)
	}

	return h.storage.URL(filename), nil
}

func (h *ItemHandler) checkImageType(header *multipart.FileHeader) error {
	contentType := header.Header.Get("Content-Type")
	allowed := false
	for _, t := range h.upload.AllowedTypes {
		if contentType == t {
			allowed = true
			break
		}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpeg", ".jpg", ".png", ".gif":
	default:
		allowed = false
	}

	if !allowed {
		return apperrors.NewBadRequestError("Only image files are allowed")
	}
	return nil
}
