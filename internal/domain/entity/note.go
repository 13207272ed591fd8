package entity

// Note is a single content item owned by exactly one user for its entire life.
//
// Trashed and Archived are independent flags and may both be set at once.
// TrashedAt is written only by the dedicated trash operation; the generic
// update never touches it, so a note that is un-trashed and trashed again
// later may briefly carry a stale timestamp in between.
type Note struct {
	ID        int64      `gorm:"primaryKey"`
	OwnerID   int64      `gorm:"not null;index"` // References: users(id)
	Title     string     `gorm:"not null"`
	Content   string     `gorm:"not null"`
	Tags      StringList `gorm:"not null;type:text"`
	Color     string     `gorm:"not null"`
	Archived  bool       `gorm:"not null;default:false"`
	Trashed   bool       `gorm:"not null;default:false"`
	TrashedAt *int64
	Reminder  *int64
	CreatedAt int64 `gorm:"not null;autoCreateTime:false"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}
