package models

// Geo holds the coordinates embedded in an address.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Address is the nested address object of a user. It is stored as a JSON
// column rather than a related table.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

// Company is the nested company object of a user.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// User is a directory record matching the JSONPlaceholder user shape.
// The ID is supplied by the caller, not generated.
type User struct {
	ID       int     `json:"id" gorm:"primaryKey" validate:"required,gt=0"`
	Name     string  `json:"name" gorm:"type:varchar(255)" validate:"required"`
	Username string  `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required"`
	Email    string  `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Address  Address `json:"address" gorm:"serializer:json"`
	Phone    string  `json:"phone" gorm:"type:varchar(50)"`
	Website  string  `json:"website" gorm:"type:varchar(255)"`
	Company  Company `json:"company" gorm:"serializer:json"`
}

// UserUpdate carries one optional slot per mutable user field. A nil slot
// leaves the stored field untouched; PUT and PATCH both apply it the same
// way for compatibility with JSONPlaceholder-style callers.
type UserUpdate struct {
	Name     *string  `json:"name"`
	Username *string  `json:"username"`
	Email    *string  `json:"email" validate:"omitempty,email"`
	Address  *Address `json:"address"`
	Phone    *string  `json:"phone"`
	Website  *string  `json:"website"`
	Company  *Company `json:"company"`
}

// ApplyTo copies the non-nil slots of the update onto the user.
func (u UserUpdate) ApplyTo(user *User) {
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Username != nil {
		user.Username = *u.Username
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.Address != nil {
		user.Address = *u.Address
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.Website != nil {
		user.Website = *u.Website
	}
	if u.Company != nil {
		user.Company = *u.Company
	}
}
