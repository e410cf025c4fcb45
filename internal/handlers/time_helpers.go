package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

// tenantLocation resolves the governing zone of the request's tenant.
func tenantLocation(c *gin.Context, zones *timezone.Zones) *time.Location {
	if t := middleware.Tenant(c); t != nil {
		return zones.Location(t.Timezone)
	}
	return zones.Default()
}
