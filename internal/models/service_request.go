package models

import "time"

type ServiceRequest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint     `gorm:"index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	TechnicianID *uint       `gorm:"index" json:"technician_id"`
	Technician   *Technician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"technician,omitempty"`

	Description string `gorm:"size:1000;not null" json:"description"`
	Region      string `gorm:"size:50;not null;index" json:"region"`

	Status string `gorm:"size:30;default:'pending';index" json:"status"`

	// Customer-offered availability windows; the second is optional.
	Availability1 time.Time  `json:"availability_1"`
	Availability2 *time.Time `json:"availability_2"`

	// Set when a technician accepts or a proposal is approved.
	ScheduledTime *time.Time `json:"scheduled_time"`

	PaymentID     string `gorm:"size:64" json:"payment_id"`
	PaymentStatus string `gorm:"size:20;default:'pending'" json:"payment_status"`

	CompletionNote string `gorm:"size:500" json:"completion_note"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
