package controllers

import (
	"net/http"

	"MedConnect/middleware"
	"MedConnect/role"
	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
)

func Prescriptions(r *gin.RouterGroup) {
	prescriptions := r.Group("prescriptions")
	{
		prescriptions.POST("", middleware.RequireRole(role.Doctor), CreatePrescription)
		prescriptions.GET("", ListPrescriptions)
		prescriptions.GET("/id/:id", FetchPrescriptionByID)
		prescriptions.GET("/:patientId", ListPatientPrescriptions)
	}
}

/*
* Bind patient and medications
* The authenticated doctor becomes the prescriber, status starts pending
 */
func CreatePrescription(c *gin.Context) {
	var input services.CreatePrescriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	actor := middleware.CurrentActor(c)
	view, err := services.CreatePrescription(c.Request.Context(), actor, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

func ListPrescriptions(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	views, err := services.ListPrescriptions(c.Request.Context(), actor)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}

func ListPatientPrescriptions(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	views, err := services.ListPatientPrescriptions(c.Request.Context(), actor, c.Param("patientId"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}

func FetchPrescriptionByID(c *gin.Context) {
	view, err := services.FetchPrescriptionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}
