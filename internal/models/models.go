package models

import "time"

// Column names mirror the legacy marketplace schema so existing data and
// clients keep working.

type Role struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name_role;size:50;not null" json:"name_role"`
}

type User struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string     `gorm:"column:name_user;size:100;not null" json:"name_user"`
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Picture         string     `gorm:"column:picture_user" json:"picture_user"`
	RoleID          uint       `gorm:"column:id_role;not null;default:1" json:"id_role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Company struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name_company;size:50;not null" json:"name_company"`
	Description string    `gorm:"column:description_company;size:400;not null" json:"description_company"`
	Picture     string    `gorm:"column:picture_company" json:"picture_company"`
	Zipcode     string    `gorm:"size:5;not null" json:"zipcode"`
	Phone       string    `gorm:"size:50;not null" json:"phone"`
	Address     string    `gorm:"size:150;not null" json:"address"`
	Siret       string    `gorm:"size:14;not null" json:"siret"`
	Town        string    `gorm:"size:100;not null" json:"town"`
	Lat         string    `json:"lat"`
	Long        string    `json:"long"`
	UserID      uint      `gorm:"column:id_user;index;not null" json:"id_user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name_product;size:50;not null" json:"name_product"`
	Picture     string    `gorm:"column:picture_product" json:"picture_product"`
	Price       float64   `gorm:"not null" json:"price"`
	Description string    `gorm:"column:description_product;not null" json:"description_product"`
	CompanyID   uint      `gorm:"column:id_company;index;not null" json:"id_company"`
	CategoryID  uint      `gorm:"column:id_category;index;not null" json:"id_category"`
	Tags        []Tag     `gorm:"many2many:products_tags" json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name_category;size:50;not null" json:"name_category"`
	Description string    `gorm:"column:description_category;size:400;not null" json:"description_category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name_tag;size:50;not null" json:"name_tag"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Chat struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name_chat;size:100;not null" json:"name_chat"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Message struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"size:5000;not null" json:"content"`
	ChatID    uint      `gorm:"column:id_chat;index;not null" json:"id_chat"`
	UserID    uint      `gorm:"column:id_user;index;not null" json:"id_user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Ticket struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:5000;not null" json:"description"`
	UserID      uint      `gorm:"column:id_user;index;not null" json:"id_user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Session backs token revocation: a bearer token is only accepted while its
// jti row exists, is unexpired and not revoked.
type Session struct {
	JTI       string     `gorm:"primaryKey;size:64" json:"jti"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
