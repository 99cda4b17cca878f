package models

// Account is an authentication identity. It is unrelated to the User
// directory records; any valid account may act on any user record.
type Account struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"type:varchar(255)"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
}
