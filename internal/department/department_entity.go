package department

import (
	"time"
)

// Department has many employees via Employee.DepartmentID; it does not own
// their lifecycle, so deleting a department leaves its employees in place.
type Department struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:30;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
