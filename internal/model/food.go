package model

type Food struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Description string `json:"description"`
	Calories    int    `json:"calories"`
	Type        string `gorm:"index" json:"type"`
}
