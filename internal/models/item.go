package models

type ItemType string

const (
	ItemTypeLost  ItemType = "lost"
	ItemTypeFound ItemType = "found"
)

type ClaimStatusValue string

// Item.ClaimStatus lifecycle, derived from the claim workflow.
const (
	ItemUnclaimed ClaimStatusValue = "unclaimed"
	ItemPending   ClaimStatusValue = "pending"
	ItemClaimed   ClaimStatusValue = "claimed"
)

type Item struct {
	BaseModel
	Name        string   `gorm:"not null" json:"name"`
	Category    string   `gorm:"not null" json:"category"`
	Description string   `json:"description"`
	Location    string   `gorm:"not null" json:"location"`
	Date        string   `gorm:"not null" json:"date"`
	Time        string   `gorm:"not null" json:"time"`
	Image       *string  `json:"image"`
	ContactEmail string  `gorm:"not null" json:"contactEmail"`
	Type        ItemType `gorm:"type:varchar(10);not null;index" json:"type"`
	// Reporter is a display-name snapshot; approval of a claim overwrites
	// it with the finder's name.
	Reporter string `gorm:"default:Anonymous" json:"reporter"`
	Urgent   bool   `gorm:"default:false" json:"urgent"`

	CreatedByID string `gorm:"type:uuid;not null;index" json:"createdBy"`
	CreatedBy   *User  `gorm:"foreignKey:CreatedByID" json:"-"`

	// Populated only once a claim is approved.
	FoundByID     *string `gorm:"type:uuid" json:"foundBy"`
	FoundBy       *User   `gorm:"foreignKey:FoundByID" json:"-"`
	FoundLocation *string `json:"foundLocation"`
	FoundDate     *string `json:"foundDate"`
	FoundTime     *string `json:"foundTime"`

	ClaimStatus ClaimStatusValue `gorm:"type:varchar(10);not null;default:unclaimed" json:"claimStatus"`
}
