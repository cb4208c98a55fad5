package models

import "time"

// InquiryType classifies a customer inquiry.
type InquiryType string

const (
	InquiryTypeProduct  InquiryType = "PRODUCT"
	InquiryTypeOrder    InquiryType = "ORDER"
	InquiryTypeDelivery InquiryType = "DELIVERY"
	InquiryTypeRefund   InquiryType = "REFUND"
	InquiryTypeEtc      InquiryType = "ETC"
)

// ValidInquiryType reports whether t is a known inquiry type.
func ValidInquiryType(t InquiryType) bool {
	switch t {
	case InquiryTypeProduct, InquiryTypeOrder, InquiryTypeDelivery, InquiryTypeRefund, InquiryTypeEtc:
		return true
	}
	return false
}

// Inquiry is a customer question or report, optionally with image attachments.
// Attachments are uploaded to object storage before the row is written, so a
// stored inquiry never references a missing file.
type Inquiry struct {
	ID      uint        `gorm:"primaryKey" json:"id"`
	UserID  uint        `gorm:"not null;index" json:"userId"`
	User    *User       `gorm:"foreignKey:UserID" json:"-"`
	Type    InquiryType `gorm:"type:varchar(20);not null" json:"type"`
	Title   string      `gorm:"type:varchar(200);not null" json:"title"`
	Content string      `gorm:"type:text;not null" json:"content"`

	Images []InquiryImage `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE" json:"images"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// InquiryImage is an uploaded attachment URL owned by one inquiry.
type InquiryImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	InquiryID uint   `gorm:"not null;index" json:"-"`
	URL       string `gorm:"type:varchar(1000);not null" json:"url"`
}

// InquiryCreatedEvent is published when a new inquiry is stored.
type InquiryCreatedEvent struct {
	EventType  string      `json:"event_type"`
	InquiryID  uint        `json:"inquiry_id"`
	UserID     uint        `json:"user_id"`
	Type       InquiryType `json:"type"`
	Title      string      `json:"title"`
	ImageCount int         `json:"image_count"`
	Timestamp  time.Time   `json:"timestamp"`
}
