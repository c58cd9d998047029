package employee

type CreateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required,max=70"`
	Email        string  `json:"email" binding:"required,email,max=30"`
	Salary       float64 `json:"salary" binding:"required,min=1"`
	DateOfBirth  string  `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	MobileNumber int64   `json:"mobileNumber" binding:"required,min=1000000000,max=9999999999"`
	DepartmentID uint    `json:"departmentId" binding:"required"`
}

// UpdateEmployeeRequest carries only the fields the caller wants to change.
// Pointer fields distinguish "absent" from "zero", so a partial payload
// never wipes the fields it does not mention.
type UpdateEmployeeRequest struct {
	Name         *string  `json:"name" binding:"omitempty,max=70"`
	Email        *string  `json:"email" binding:"omitempty,email,max=30"`
	Salary       *float64 `json:"salary" binding:"omitempty,min=1"`
	DateOfBirth  *string  `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	MobileNumber *int64   `json:"mobileNumber" binding:"omitempty,min=1000000000,max=9999999999"`
	DepartmentID *uint    `json:"departmentId" binding:"omitempty"`
}

type EmployeeResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Salary       float64 `json:"salary"`
	DateOfBirth  string  `json:"dateOfBirth"`
	MobileNumber int64   `json:"mobileNumber"`
	DepartmentID uint    `json:"departmentId"`
}
