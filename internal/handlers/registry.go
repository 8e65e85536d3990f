package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	ItemHandler         *ItemHandler
	ClaimHandler        *ClaimHandler
	CommentHandler      *CommentHandler
	NotificationHandler *NotificationHandler
}
