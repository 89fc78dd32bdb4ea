package model

import (
	"time"

	"locator/internal/domain/entity"
)

// ClinicSnapshotModel is one clinic of the saved catalog snapshot.
// Position keeps directory order and starts at 1.
type ClinicSnapshotModel struct {
	Position    int       `gorm:"primaryKey;autoIncrement:false"`
	ClinicID    string    `gorm:"type:text;not null;uniqueIndex"`
	Name        string    `gorm:"type:text;not null"`
	Address     string    `gorm:"type:text"`
	ContactInfo string    `gorm:"type:text"`
	Latitude    *float64  `gorm:"type:double precision"`
	Longitude   *float64  `gorm:"type:double precision"`
	FetchedAt   time.Time `gorm:"type:timestamptz;not null"`
}

// TableName specifies the table name for ClinicSnapshotModel
func (ClinicSnapshotModel) TableName() string {
	return "clinic_snapshots"
}

// FromClinic converts a clinic at the given position to its snapshot row
func FromClinic(position int, clinic entity.Clinic, fetchedAt time.Time) *ClinicSnapshotModel {
	m := &ClinicSnapshotModel{
		Position:    position,
		ClinicID:    clinic.ID,
		Name:        clinic.Name,
		Address:     clinic.Address,
		ContactInfo: clinic.ContactInfo,
		FetchedAt:   fetchedAt,
	}
	if clinic.Location != nil {
		lat, lng := clinic.Location.Latitude, clinic.Location.Longitude
		m.Latitude = &lat
		m.Longitude = &lng
	}

	return m
}

// ToClinic converts the row back to a clinic
func (m *ClinicSnapshotModel) ToClinic() entity.Clinic {
	clinic := entity.Clinic{
		ID:          m.ClinicID,
		Name:        m.Name,
		Address:     m.Address,
		ContactInfo: m.ContactInfo,
	}
	if m.Latitude != nil && m.Longitude != nil {
		clinic.Location = &entity.Coordinate{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}

	return clinic
}
