package employee

import (
	"github.com/gin-gonic/gin"

	"github.com/siddheshp/ems-api-okta/internal/auth"
	"github.com/siddheshp/ems-api-okta/internal/middleware"
)

// RegisterRoutes mounts the employee endpoints. Only create is privileged:
// it requires a verified token AND membership in the admin group, in that
// order.
func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	verifier auth.Verifier,
) {
	employees := r.Group("/employees")

	{
		employees.POST("",
			middleware.Authenticate(verifier),
			middleware.RequireGroup(middleware.AdminGroup),
			h.Create,
		)
		employees.GET("", h.GetAll)
		employees.GET("/:id", h.GetById)
		employees.PUT("/:id", h.Update)
		employees.DELETE("/:id", h.Delete)
	}
}
