package controllers

import (
	"net/http"

	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
)

func Auth(r *gin.RouterGroup) {
	auth := r.Group("auth")
	{
		auth.POST("/signup", Signup)
		auth.POST("/login", Login)
	}
}

/*
* Bind the signup fields
* Pass to the service, answer with the safe user and a token
 */
func Signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	user, token, err := services.Signup(c.Request.Context(), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"user": user, "token": token}))
}

/*
* Bind the login fields
* Pass to the service, answer with the safe user and a token
 */
func Login(c *gin.Context) {
	var input services.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError(err.Error())))
		return
	}
	user, token, err := services.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"user": user, "token": token}))
}
