package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStyle categorizes a product by gear type.
type ProductStyle string

const (
	StyleRacing ProductStyle = "RACING"
	StyleJacket ProductStyle = "JACKET"
	StylePants  ProductStyle = "PANTS"
	StyleGloves ProductStyle = "GLOVES"
	StyleBoots  ProductStyle = "BOOTS"
	StyleCasual ProductStyle = "CASUAL"
)

// ProductGender tags who a product is made for. GenderCommon is a sentinel
// meaning "applies regardless of gender"; list queries that filter by MALE or
// FEMALE implicitly include it.
type ProductGender string

const (
	GenderMale   ProductGender = "MALE"
	GenderFemale ProductGender = "FEMALE"
	GenderCommon ProductGender = "COMMON"
)

// Product is a catalog entry. It owns its color variants exclusively; the
// category is only referenced, so deleting a category with products is blocked
// by the foreign key rather than cascading.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Summary     string          `gorm:"type:varchar(500)" json:"summary,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	CategoryID  uint            `gorm:"not null;index" json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"category,omitempty"`

	Style  ProductStyle  `gorm:"type:varchar(20);not null;index" json:"style"`
	Gender ProductGender `gorm:"type:varchar(10);not null;index" json:"gender"`

	Material         string `gorm:"type:varchar(200)" json:"material,omitempty"`
	SizeInfo         string `gorm:"type:varchar(500)" json:"sizeInfo,omitempty"`
	Manufacturer     string `gorm:"type:varchar(200)" json:"manufacturer,omitempty"`
	OriginCountry    string `gorm:"type:varchar(100)" json:"originCountry,omitempty"`
	CareInstructions string `gorm:"type:text" json:"careInstructions,omitempty"`
	ManufactureDate  string `gorm:"type:varchar(50)" json:"manufactureDate,omitempty"`
	QualityAssurance string `gorm:"type:text" json:"qualityAssurance,omitempty"`
	AsPhone          string `gorm:"type:varchar(50)" json:"asPhone,omitempty"`

	IsNew  bool `gorm:"not null;default:false" json:"isNew"`
	IsBest bool `gorm:"not null;default:false" json:"isBest"`

	Colors []ProductColor `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"colors"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// ProductColor is a purchasable variant distinguished by color. ProductCode is
// the natural key used for cross-referencing and is unique across the whole
// catalog, not just within the owning product.
type ProductColor struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ProductID   uint   `gorm:"not null;index" json:"productId"`
	ProductCode string `gorm:"type:varchar(50);not null;uniqueIndex" json:"productCode"`
	ColorName   string `gorm:"type:varchar(100);not null" json:"colorName"`
	HexCode     string `gorm:"type:varchar(10)" json:"hexCode,omitempty"`
	ColorInfo   string `gorm:"type:varchar(500)" json:"colorInfo,omitempty"`

	Images []ProductImage `gorm:"foreignKey:ProductColorID;constraint:OnDelete:CASCADE" json:"images"`
	Sizes  []ProductSize  `gorm:"foreignKey:ProductColorID;constraint:OnDelete:CASCADE" json:"sizes"`
}

// ProductImage is an image URL owned by one color variant. The first image of
// a variant is treated as representative in list views.
type ProductImage struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ProductColorID uint   `gorm:"not null;index" json:"-"`
	URL            string `gorm:"type:varchar(1000);not null" json:"url"`
}

// ProductSize is a (size label, stock count) pair owned by one color variant.
// Rows are returned in insertion order so size runs display as entered.
type ProductSize struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	ProductColorID uint   `gorm:"not null;index" json:"-"`
	Size           string `gorm:"type:varchar(20);not null" json:"size"`
	Stock          int    `gorm:"not null;default:0" json:"stock"`
}

// ColorInput is one color variant in a product create/update payload,
// including its full image and size set.
type ColorInput struct {
	ProductCode string `json:"productCode" binding:"required,max=50"`
	ColorName   string `json:"colorName" binding:"required,max=100"`
	HexCode     string `json:"hexCode" binding:"max=10"`
	ColorInfo   string `json:"colorInfo" binding:"max=500"`

	Images []string    `json:"images"`
	Sizes  []SizeInput `json:"sizes" binding:"dive"`
}

// SizeInput is one size/stock entry in a variant payload.
type SizeInput struct {
	Size  string `json:"size" binding:"required,max=20"`
	Stock int    `json:"stock" binding:"gte=0"`
}

// ProductRequest is the payload for creating a product and, because updates
// use full-replacement semantics for the variant set, also for updating one.
type ProductRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description" binding:"required"`
	Summary     string          `json:"summary" binding:"max=500"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	CategoryID  uint            `json:"categoryId" binding:"required"`

	Style  ProductStyle  `json:"style" binding:"required,oneof=RACING JACKET PANTS GLOVES BOOTS CASUAL"`
	Gender ProductGender `json:"gender" binding:"required,oneof=MALE FEMALE COMMON"`

	Material         string `json:"material"`
	SizeInfo         string `json:"sizeInfo"`
	Manufacturer     string `json:"manufacturer"`
	OriginCountry    string `json:"originCountry"`
	CareInstructions string `json:"careInstructions"`
	ManufactureDate  string `json:"manufactureDate"`
	QualityAssurance string `json:"qualityAssurance"`
	AsPhone          string `json:"asPhone"`

	IsNew  bool `json:"isNew"`
	IsBest bool `json:"isBest"`

	Colors []ColorInput `json:"colors" binding:"dive"`
}

// ProductListMeta is the pagination envelope for product list responses.
type ProductListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// ProductListResponse is the response body for product list queries.
type ProductListResponse struct {
	Data []Product       `json:"data"`
	Meta ProductListMeta `json:"meta"`
}
