package services

// ServiceContainer groups the constructed services for handler wiring.
type ServiceContainer struct {
	AuthService         *AuthService
	ItemService         *ItemService
	ClaimService        *ClaimService
	CommentService      *CommentService
	NotificationService *NotificationService
}
