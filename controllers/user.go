package controllers

import (
	"net/http"

	"MedConnect/middleware"
	"MedConnect/role"
	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
)

func Users(r *gin.RouterGroup) {
	users := r.Group("users")
	{
		users.GET("", FetchAllUsers)
		users.GET("/:id", middleware.RequireRole(role.Admin), FetchUserByID)
		users.PATCH("/:id", middleware.RequireRole(role.Admin), UpdateUserByID)
		users.DELETE("/:id", middleware.RequireRole(role.Admin), DeleteUserByID)
	}
}

/*
* Optional role query param scopes the listing
* Without it only admins may list everyone
 */
func FetchAllUsers(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	users, err := services.FetchAllUsers(c.Request.Context(), actor, c.Query("role"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(users))
}

func FetchUserByID(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	user, err := services.FetchUserByID(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}

/*
* Bind the patch fields and pass to the service
* This is the only path that may change a user's role
 */
func UpdateUserByID(c *gin.Context) {
	var input services.UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	actor := middleware.CurrentActor(c)
	user, err := services.UpdateUserByID(c.Request.Context(), actor, c.Param("id"), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(user))
}

func DeleteUserByID(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := services.DeleteUserByID(c.Request.Context(), actor, c.Param("id")); err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"message": "Deleted"}))
}
