package models

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"gorm.io/gorm"
)

// WorkUnit is one addressable task of the catalog. Rows are written once at
// bootstrap and never updated.
type WorkUnit struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Area        string `gorm:"not null" json:"area"`
	Location    string `gorm:"not null" json:"location"`
	Category    string `gorm:"not null" json:"category"`
	Subcategory string `gorm:"not null" json:"subcategory"`
	Action      string `gorm:"not null;index" json:"action"`
	Quantity    string `gorm:"not null" json:"quantity"`
	Profession  string `gorm:"not null;index" json:"profession"`
	Digest      string `gorm:"type:varchar(32);uniqueIndex:ensure_unique_work_unit;not null" json:"-"`
}

func (w *WorkUnit) BeforeCreate(tx *gorm.DB) (err error) {
	w.Digest = w.ComputeDigest()
	return
}

// ComputeDigest hashes the seven descriptive fields.
func (w WorkUnit) ComputeDigest() string {
	sum := md5.Sum([]byte(w.Area + w.Location + w.Category + w.Subcategory + w.Action + w.Quantity + w.Profession))
	return hex.EncodeToString(sum[:])
}

// Describe renders the unit as area:location:category:subcategory:action.
func (w WorkUnit) Describe() string {
	return strings.Join([]string{w.Area, w.Location, w.Category, w.Subcategory, w.Action}, ":")
}
