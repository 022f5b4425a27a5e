package changerequest

import (
	"github.com/gin-gonic/gin"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
) {
	requests := r.Group("/change-requests")
	requests.Use(middleware.AuthMiddleware(jwtSecret))
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "change_request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "change_request", "read"), handler.GetById)
		requests.POST("", middleware.RBACAuthorize(rbacService, "change_request", "create"), handler.Create)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "change_request", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "change_request", "reject"), handler.Reject)
	}
}
