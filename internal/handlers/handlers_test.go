package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lostfound_backend/internal/database"
	"lostfound_backend/internal/email"
	"lostfound_backend/internal/middleware"
	"lostfound_backend/internal/services"
	"lostfound_backend/internal/storage"
	"lostfound_backend/internal/validator"
)

const testSecret = "handler-test-secret"

// newTestRouter assembles the full HTTP surface over a throwaway SQLite
// database, mirroring the production wiring.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: t.TempDir(),
		BaseURL:  "/uploads",
	})
	require.NoError(t, err)

	base := NewBaseHandler(validator.New())
	appHandlers := &AppHandlers{
		AuthHandler: NewAuthHandler(base, services.NewAuthService(testSecret, 24)),
		ItemHandler: NewItemHandler(base, services.NewItemService(email.NoopSender{}), store, UploadConfig{
			MaxSize:      5 * 1024 * 1024,
			AllowedTypes: []string{"image/jpeg", "image/png", "image/gif"},
		}),
		ClaimHandler:        NewClaimHandler(base, services.NewClaimService()),
		CommentHandler:      NewCommentHandler(base, services.NewCommentService()),
		NotificationHandler: NewNotificationHandler(base, services.NewNotificationService()),
	}

	router := gin.New()
	router.Use(middleware.DBMiddleware(db))

	authMW := middleware.AuthMiddleware(testSecret)
	api := router.Group("/api")
	appHandlers.AuthHandler.RegisterRoutes(api)
	appHandlers.ItemHandler.RegisterRoutes(api, authMW)
	appHandlers.ClaimHandler.RegisterRoutes(api, authMW)
	appHandlers.CommentHandler.RegisterRoutes(api, authMW)
	appHandlers.NotificationHandler.RegisterRoutes(api, authMW)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signupUser(t *testing.T, router *gin.Engine, name, emailAddr string) (token, userID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     name,
		"email":    emailAddr,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	token = body["token"].(string)
	user := body["user"].(map[string]interface{})
	return token, user["id"].(string)
}

func createItemForm(t *testing.T, router *gin.Engine, token, itemType string) string {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, value := range map[string]string{
		"name":        "Blue Backpack",
		"category":    "bags",
		"description": "navy blue",
		"location":    "library",
		"date":        "2025-03-01",
		"time":        "14:00",
		"type":        itemType,
	} {
		require.NoError(t, mw.WriteField(field, value))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/items", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	item := body["item"].(map[string]interface{})
	return item["id"].(string)
}

func TestAuthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	t.Run("signup then login", func(t *testing.T) {
		token, _ := signupUser(t, router, "Alice", "alice@example.com")
		assert.NotEmpty(t, token)

		w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure lists fields", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{"name": "NoEmail"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		errObj := body["error"].(map[string]interface{})
		assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/items?type=lost", "/api/notifications"} {
		w := doJSON(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestXAuthTokenHeader(t *testing.T) {
	router := newTestRouter(t)
	token, _ := signupUser(t, router, "Alice", "alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/items?type=lost", nil)
	req.Header.Set("x-auth-token", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestClaimLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	ownerToken, _ := signupUser(t, router, "Alice", "alice@example.com")
	finderToken, finderID := signupUser(t, router, "Bob", "bob@example.com")

	itemID := createItemForm(t, router, ownerToken, "lost")

	// Finder submits a claim.
	w := doJSON(t, router, http.MethodPost, "/api/claims", finderToken, gin.H{
		"itemId":        itemID,
		"foundLocation": "cafeteria",
		"foundDate":     "2025-03-02",
		"foundTime":     "09:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	claim := decodeBody(t, w)["claim"].(map[string]interface{})
	claimID := claim["id"].(string)

	// Self-claim by the owner is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/claims", ownerToken, gin.H{
		"itemId":        itemID,
		"foundLocation": "cafeteria",
		"foundDate":     "2025-03-02",
		"foundTime":     "09:30",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Owner sees the claim notification with an action flag.
	w = doJSON(t, router, http.MethodGet, "/api/notifications", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "found_claim", notifications[0]["type"])
	assert.Equal(t, true, notifications[0]["actionRequired"])
	assert.Equal(t, claimID, notifications[0]["claimId"])

	// The pending claim is visible for the item.
	w = doJSON(t, router, http.MethodGet, "/api/claims/item/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	pending := decodeBody(t, w)
	assert.Equal(t, claimID, pending["id"])

	// Only the owner may approve.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/claims/%s/approve", claimID), finderToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/claims/%s/approve", claimID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decodeBody(t, w)
	approvedClaim := approved["claim"].(map[string]interface{})
	assert.Equal(t, "approved", approvedClaim["status"])
	item := approved["item"].(map[string]interface{})
	assert.Equal(t, "found", item["type"])
	assert.Equal(t, "claimed", item["claimStatus"])
	assert.Equal(t, finderID, item["foundBy"])

	// A second decision conflicts.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/claims/%s/reject", claimID), ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Finder was notified of the approval.
	w = doJSON(t, router, http.MethodGet, "/api/notifications", finderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "claim_approved", notifications[0]["type"])

	// Unread count then mark-all-read.
	w = doJSON(t, router, http.MethodGet, "/api/notifications/unread-count", finderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decodeBody(t, w)["count"])

	w = doJSON(t, router, http.MethodPut, "/api/notifications/mark-all-read", finderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/notifications/unread-count", finderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])
}

func TestClaimRejectOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	ownerToken, _ := signupUser(t, router, "Alice", "alice@example.com")
	finderToken, _ := signupUser(t, router, "Bob", "bob@example.com")
	itemID := createItemForm(t, router, ownerToken, "lost")

	w := doJSON(t, router, http.MethodPost, "/api/claims", finderToken, gin.H{
		"itemId":        itemID,
		"foundLocation": "cafeteria",
		"foundDate":     "2025-03-02",
		"foundTime":     "09:30",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	claim := decodeBody(t, w)["claim"].(map[string]interface{})
	assert.Equal(t, "pending", claim["status"])
	claimID := claim["id"].(string)

	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/claims/%s/reject", claimID), ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	rejected := body["claim"].(map[string]interface{})
	assert.Equal(t, "rejected", rejected["status"])
	assert.Equal(t, claimID, rejected["id"])

	// The item is claimable again and stays lost.
	w = doJSON(t, router, http.MethodGet, "/api/items/"+itemID, finderToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)
	assert.Equal(t, "lost", item["type"])
	assert.Equal(t, "unclaimed", item["claimStatus"])
}

func TestCommentEndpoints(t *testing.T) {
	router := newTestRouter(t)

	ownerToken, _ := signupUser(t, router, "Alice", "alice@example.com")
	commenterToken, _ := signupUser(t, router, "Bob", "bob@example.com")
	itemID := createItemForm(t, router, ownerToken, "lost")

	w := doJSON(t, router, http.MethodPost, "/api/comments", commenterToken, gin.H{
		"itemId": itemID,
		"text":   "I think I saw this near the gym",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	comment := decodeBody(t, w)
	commentID := comment["id"].(string)
	user := comment["userInfo"].(map[string]interface{})
	assert.Equal(t, "Bob", user["name"])

	w = doJSON(t, router, http.MethodPost, "/api/comments", ownerToken, gin.H{
		"itemId":          itemID,
		"text":            "where exactly?",
		"parentCommentId": commentID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/comments/item/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	replies := comments[0]["replies"].([]interface{})
	assert.Len(t, replies, 1)

	// Deleting someone else's comment is forbidden.
	w = doJSON(t, router, http.MethodDelete, "/api/comments/"+commentID, ownerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/comments/"+commentID, commenterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/comments/item/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
	assert.Empty(t, comments)
}

func TestItemEndpoints(t *testing.T) {
	router := newTestRouter(t)

	ownerToken, _ := signupUser(t, router, "Alice", "alice@example.com")
	otherToken, _ := signupUser(t, router, "Bob", "bob@example.com")
	itemID := createItemForm(t, router, ownerToken, "lost")

	w := doJSON(t, router, http.MethodGet, "/api/items/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := decodeBody(t, w)
	assert.Equal(t, "Blue Backpack", item["name"])
	assert.Equal(t, "Alice", item["reporter"])

	w = doJSON(t, router, http.MethodGet, "/api/items?type=lost", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	// The type filter is mandatory.
	w = doJSON(t, router, http.MethodGet, "/api/items", ownerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Legacy shortcut: mark a lost item found directly.
	w = doJSON(t, router, http.MethodPost, "/api/items/found/"+itemID, otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "Owner notified successfully", body["msg"])

	// Deleting as a non-creator is forbidden, as the creator succeeds.
	w = doJSON(t, router, http.MethodDelete, "/api/items/"+itemID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/items/"+itemID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/items/"+itemID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
