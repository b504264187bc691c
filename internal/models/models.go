package models

type Product struct {
	ID          int     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string  `gorm:"not null"                 json:"title"`
	Description string  `gorm:"not null"                 json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	ImageURL    string  `gorm:"not null"                 json:"imageUrl"`
	IsFeatured  bool    `gorm:"default:false"            json:"isFeatured"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Name         string `json:"name"`
}
