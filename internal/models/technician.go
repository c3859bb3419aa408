package models

import "time"

type Technician struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	Address       string `gorm:"size:255" json:"address"`
	LicenseNumber string `gorm:"size:50" json:"license_number"`
	Insured       bool   `gorm:"default:false" json:"insured"`
	Available     bool   `gorm:"default:true" json:"available"`

	Regions []TechnicianRegion `gorm:"constraint:OnDelete:CASCADE;" json:"regions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TechnicianRegion is one serviced region of a technician. The pair
// (technician_id, region) is unique.
type TechnicianRegion struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	TechnicianID uint   `gorm:"uniqueIndex:idx_technician_region" json:"-"`
	Region       string `gorm:"size:50;uniqueIndex:idx_technician_region" json:"region"`
}
