package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"lostfound_backend/internal/models"
	"lostfound_backend/internal/repositories"
	"lostfound_backend/pkg/apperrors"
)

// seedNotification writes a notification directly, bypassing the
// workflows, for read-side tests.
func seedNotification(t *testing.T, db *gorm.DB, recipient, sender *models.User, item *models.Item) *models.Notification {
	t.Helper()

	n := &models.Notification{
		RecipientID: recipient.ID,
		SenderID:    sender.ID,
		Type:        models.NotificationItemUpdate,
		ItemID:      item.ID,
		Message:     "test notification",
	}
	require.NoError(t, repositories.NewNotificationRepository(db).Create(n))
	return n
}

func TestNotificationList(t *testing.T) {
	svc := NewNotificationService()

	db := newTestDB(t)
	owner := createTestUser(t, db, "Alice", "alice@example.com")
	sender := createTestUser(t, db, "Bob", "bob@example.com")
	item := createLostItem(t, db, owner, "Backpack")

	seedNotification(t, db, owner, sender, item)
	seedNotification(t, db, owner, sender, item)
	// Belongs to someone else, must not leak.
	seedNotification(t, db, sender, owner, item)

	list, err := svc.ListForRecipient(db, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Sender and item identities are expanded inline so the client polls
	// a single endpoint.
	require.NotNil(t, list[0].Sender)
	assert.Equal(t, "Bob", list[0].Sender.Name)
	require.NotNil(t, list[0].Item)
	assert.Equal(t, "Backpack", list[0].Item.Name)
}

func TestNotificationListCap(t *testing.T) {
	svc := NewNotificationService()

	db := newTestDB(t)
	owner := createTestUser(t, db, "Alice", "alice@example.com")
	sender := createTestUser(t, db, "Bob", "bob@example.com")
	item := createLostItem(t, db, owner, "Backpack")

	for i := 0; i < repositories.ListLimit+5; i++ {
		seedNotification(t, db, owner, sender, item)
	}

	list, err := svc.ListForRecipient(db, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, repositories.ListLimit)
}

func TestNotificationMarkAsRead(t *testing.T) {
	svc := NewNotificationService()

	t.Run("flips to read and is idempotent", func(t *testing.T) {
		db := newTestDB(t)
		owner := createTestUser(t, db, "Alice", "alice@example.com")
		sender := createTestUser(t, db, "Bob", "bob@example.com")
		item := createLostItem(t, db, owner, "Backpack")
		n := seedNotification(t, db, owner, sender, item)

		count, err := svc.UnreadCount(db, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		require.NoError(t, svc.MarkAsRead(db, owner.ID, n.ID))
		require.NoError(t, svc.MarkAsRead(db, owner.ID, n.ID))

		count, err = svc.UnreadCount(db, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("another recipient's notification is forbidden", func(t *testing.T) {
		db := newTestDB(t)
		owner := createTestUser(t, db, "Alice", "alice@example.com")
		sender := createTestUser(t, db, "Bob", "bob@example.com")
		item := createLostItem(t, db, owner, "Backpack")
		n := seedNotification(t, db, owner, sender, item)

		err := svc.MarkAsRead(db, sender.ID, n.ID)
		requireAppError(t, err, apperrors.CodeForbidden, 403)
	})

	t.Run("unknown notification is not found", func(t *testing.T) {
		db := newTestDB(t)
		owner := createTestUser(t, db, "Alice", "alice@example.com")

		err := svc.MarkAsRead(db, owner.ID, "00000000-0000-0000-0000-000000000000")
		requireAppError(t, err, apperrors.CodeNotFound, 404)
	})
}

func TestNotificationMarkAllAsRead(t *testing.T) {
	svc := NewNotificationService()

	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")
	item := createLostItem(t, db, alice, "Backpack")

	seedNotification(t, db, alice, bob, item)
	seedNotification(t, db, alice, bob, item)
	seedNotification(t, db, bob, alice, item)

	require.NoError(t, svc.MarkAllAsRead(db, alice.ID))

	aliceUnread, err := svc.UnreadCount(db, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), aliceUnread)

	// Other recipients are untouched.
	bobUnread, err := svc.UnreadCount(db, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobUnread)
}

func TestNotificationDelete(t *testing.T) {
	svc := NewNotificationService()

	t.Run("recipient removes their own notification", func(t *testing.T) {
		db := newTestDB(t)
		owner := createTestUser(t, db, "Alice", "alice@example.com")
		sender := createTestUser(t, db, "Bob", "bob@example.com")
		item := createLostItem(t, db, owner, "Backpack")
		n := seedNotification(t, db, owner, sender, item)

		require.NoError(t, svc.Delete(db, owner.ID, n.ID))

		list, err := svc.ListForRecipient(db, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("another recipient's notification is forbidden", func(t *testing.T) {
		db := newTestDB(t)
		owner := createTestUser(t, db, "Alice", "alice@example.com")
		sender := createTestUser(t, db, "Bob", "bob@example.com")
		item := createLostItem(t, db, owner, "Backpack")
		n := seedNotification(t, db, owner, sender, item)

		err := svc.Delete(db, sender.ID, n.ID)
		requireAppError(t, err, apperrors.CodeForbidden, 403)
	})
}
