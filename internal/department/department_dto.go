package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=30"`
}

type UpdateDepartmentRequest struct {
	Name *string `json:"name" binding:"omitempty,max=30"`
}

type DepartmentResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
