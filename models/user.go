package models

import (
	"time"

	"gorm.io/gorm"
)

// UserGender is the gender selected at registration.
type UserGender string

const (
	UserGenderMale   UserGender = "MALE"
	UserGenderFemale UserGender = "FEMALE"
)

// User roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a registered customer or administrator. The password column holds a
// bcrypt hash and is never serialized.
type User struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Email      string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"type:varchar(255);not null" json:"-"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	Phone      string     `gorm:"type:varchar(30);not null" json:"phone"`
	Birthdate  string     `gorm:"type:varchar(10);not null" json:"birthdate"`
	Gender     UserGender `gorm:"type:varchar(10);not null" json:"gender"`
	EmailOptIn bool       `gorm:"not null;default:false" json:"emailOptIn"`
	SmsOptIn   bool       `gorm:"not null;default:false" json:"smsOptIn"`
	ZipCode    string     `gorm:"type:varchar(10)" json:"zipCode,omitempty"`
	Address1   string     `gorm:"type:varchar(255)" json:"address1,omitempty"`
	Address2   string     `gorm:"type:varchar(255)" json:"address2,omitempty"`
	Role       string     `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// RegisterRequest is the payload for user registration. PasswordConfirm is
// compared against Password and never stored.
type RegisterRequest struct {
	Email           string     `json:"email" binding:"required,email"`
	Password        string     `json:"password" binding:"required,min=8"`
	PasswordConfirm string     `json:"passwordConfirm" binding:"required"`
	Name            string     `json:"name" binding:"required,max=100"`
	Phone           string     `json:"phone" binding:"required,max=30"`
	Birthdate       string     `json:"birthdate" binding:"required"`
	Gender          UserGender `json:"gender" binding:"required,oneof=MALE FEMALE"`
	EmailOptIn      bool       `json:"emailOptIn"`
	SmsOptIn        bool       `json:"smsOptIn"`
	ZipCode         string     `json:"zipCode"`
	Address1        string     `json:"address1"`
	Address2        string     `json:"address2"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Migrate runs schema migration for every model in dependency order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Category{},
		&Product{},
		&ProductColor{},
		&ProductImage{},
		&ProductSize{},
		&Inquiry{},
		&InquiryImage{},
	)
}
