package employee

import (
	"time"
)

type Employee struct {
	ID           uint    `gorm:"primaryKey"`
	Name         string  `gorm:"size:70;not null"`
	Email        string  `gorm:"size:30;uniqueIndex;not null"`
	Salary       float64 `gorm:"not null"`
	DateOfBirth  time.Time
	MobileNumber int64
	DepartmentID uint `gorm:"index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
