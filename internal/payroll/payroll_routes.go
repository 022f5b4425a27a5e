package payroll

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"go-payroll/internal/middleware"
	"go-payroll/internal/rbac"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	rdb *redis.Client,
) {
	periods := r.Group("/salary-periods")
	periods.Use(middleware.AuthMiddleware(jwtSecret))
	{
		periods.GET("", middleware.RBACAuthorize(rbacService, "salary_period", "read"), handler.GetAll)
		periods.GET("/:id", middleware.RBACAuthorize(rbacService, "salary_period", "read"), handler.GetById)
		periods.GET("/:id/payslip", middleware.RBACAuthorize(rbacService, "salary_period", "read"), handler.GetPayslip)
		periods.POST("",
			middleware.RBACAuthorize(rbacService, "salary_period", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
	}
}
