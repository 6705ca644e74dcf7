package controllers

import (
	"net/http"

	"MedConnect/middleware"
	"MedConnect/role"
	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
)

func Pharmacy(r *gin.RouterGroup) {
	pharmacy := r.Group("pharmacy", middleware.RequireRole(role.Pharmacist, role.Admin))
	{
		pharmacy.GET("/prescriptions", ListPharmacyQueue)
		pharmacy.GET("/prescriptions/pending", ListPendingPrescriptions)
		pharmacy.PATCH("/prescriptions/:id/status", UpdatePrescriptionStatus)
	}
}

/*
* The fulfillment queue: pending and ready prescriptions
 */
func ListPharmacyQueue(c *gin.Context) {
	views, err := services.ListPharmacyQueue(c.Request.Context())
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}

func ListPendingPrescriptions(c *gin.Context) {
	views, err := services.ListPendingPrescriptions(c.Request.Context())
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}

type statusBody struct {
	Status string `json:"status" binding:"required"`
}

/*
* Bind the target status and pass to the workflow
* The service validates the enum and guards the dispensed terminal state
 */
func UpdatePrescriptionStatus(c *gin.Context) {
	var body statusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	actor := middleware.CurrentActor(c)
	view, err := services.UpdatePrescriptionStatus(c.Request.Context(), actor, c.Param("id"), body.Status)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}
