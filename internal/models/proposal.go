package models

import "time"

// Proposal is a technician-issued alternate-time suggestion awaiting
// customer resolution.
type Proposal struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceRequestID uint           `gorm:"index;not null" json:"service_request_id"`
	ServiceRequest   ServiceRequest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	TechnicianID uint       `gorm:"not null" json:"technician_id"`
	Technician   Technician `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ProposedTime time.Time `gorm:"not null" json:"proposed_time"`
	Status       string    `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
