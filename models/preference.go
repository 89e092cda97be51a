package models

import "github.com/google/uuid"

type ContractorAreaPreference struct {
	Area         string    `gorm:"primaryKey" json:"area"`
	ContractorID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"contractorId"`
}

func (ContractorAreaPreference) TableName() string {
	return "contractor_area_preferences"
}

type ContractorUnitPreference struct {
	WorkUnitID   uint      `gorm:"primaryKey;autoIncrement:false" json:"workUnitId"`
	ContractorID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"contractorId"`
}

func (ContractorUnitPreference) TableName() string {
	return "contractor_profession_preferences"
}
