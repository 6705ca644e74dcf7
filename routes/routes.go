package routes

import (
	"net/http"

	"MedConnect/controllers"
	"MedConnect/middleware"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")

	// public
	controllers.Auth(api)

	// private routes
	protected := api.Group("", middleware.JWTAuth())
	controllers.Users(protected)
	controllers.Appointments(protected)
	controllers.Prescriptions(protected)
	controllers.Pharmacy(protected)
	controllers.MedicalRecords(protected)
}
