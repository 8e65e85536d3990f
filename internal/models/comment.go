package models

type Comment struct {
	BaseModel
	ItemID string `gorm:"type:uuid;not null;index" json:"item"`
	Item   *Item  `gorm:"foreignKey:ItemID" json:"-"`

	UserID string `gorm:"type:uuid;not null;index" json:"user"`
	User   *User  `gorm:"foreignKey:UserID" json:"-"`

	Text string `gorm:"not null" json:"text"`

	// Nil means top-level. A reply's parent always points at a top-level
	// comment; nesting stops at depth one.
	ParentCommentID *string `gorm:"type:uuid;index" json:"parentComment"`
}
