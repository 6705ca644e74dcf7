package controllers

import (
	"net/http"
	"time"

	"MedConnect/middleware"
	"MedConnect/role"
	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
)

func Appointments(r *gin.RouterGroup) {
	appointments := r.Group("appointments")
	{
		appointments.POST("", middleware.RequireRole(role.Patient), CreateAppointment)
		appointments.GET("", ListAppointments)
		appointments.GET("/:id", FetchAppointment)
		appointments.PATCH("/approve/:id", middleware.RequireRole(role.Admin, role.Doctor), ApproveAppointment)
		appointments.PATCH("/complete/:id", middleware.RequireRole(role.Doctor), CompleteAppointment)
		appointments.PATCH("/:id", UpdateAppointment)
		appointments.DELETE("/:id", DeleteAppointment)
	}
}

/*
* Bind the booking fields
* The authenticated patient becomes the appointment's patient
 */
func CreateAppointment(c *gin.Context) {
	var input services.CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	actor := middleware.CurrentActor(c)
	view, err := services.CreateAppointment(c.Request.Context(), actor, input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

/*
* Optional patient/doctor query params; the policy decides whether the
* actor may use them
 */
func ListAppointments(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	views, err := services.ListAppointments(c.Request.Context(), actor, c.Query("patient"), c.Query("doctor"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}

func FetchAppointment(c *gin.Context) {
	view, err := services.FetchAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

func ApproveAppointment(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	view, err := services.ApproveAppointment(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

func CompleteAppointment(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	view, err := services.CompleteAppointment(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

type appointmentPatchBody struct {
	Action   string     `json:"action"`
	Datetime *time.Time `json:"datetime"`
	Reason   *string    `json:"reason"`
	Status   *string    `json:"status"`
}

/*
* Generic patch with an action alias: "approve" and "complete" route to
* the same transitions as the dedicated endpoints, everything else is a
* plain field edit
 */
func UpdateAppointment(c *gin.Context) {
	var body appointmentPatchBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	actor := middleware.CurrentActor(c)
	id := c.Param("id")

	switch body.Action {
	case "approve":
		view, err := services.ApproveAppointment(c.Request.Context(), actor, id)
		if err != nil {
			c.JSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, util.SuccessResponse(view))
	case "complete":
		view, err := services.CompleteAppointment(c.Request.Context(), actor, id)
		if err != nil {
			c.JSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, util.SuccessResponse(view))
	case "":
		input := services.UpdateAppointmentInput{Datetime: body.Datetime, Reason: body.Reason, Status: body.Status}
		view, err := services.UpdateAppointment(c.Request.Context(), actor, id, input)
		if err != nil {
			c.JSON(util.StatusOf(err), util.FailedResponse(err))
			return
		}
		c.JSON(http.StatusOK, util.SuccessResponse(view))
	default:
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError("unknown action")))
	}
}

func DeleteAppointment(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := services.DeleteAppointment(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"message": "Deleted"}))
}
