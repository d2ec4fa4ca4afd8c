// Package models holds the gorm models of FieldCMS.
package models

import "time"

// Setting is a named value of site configuration kept in the database,
// e.g. the site-wide field defaults as JSON.
type Setting struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"unique;size:191"`
	Value     []byte
	UpdatedAt time.Time
}
