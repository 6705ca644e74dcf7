package controllers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"MedConnect/middleware"
	"MedConnect/role"
	"MedConnect/services"
	"MedConnect/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func MedicalRecords(r *gin.RouterGroup) {
	records := r.Group("records")
	{
		records.POST("/:patientId", middleware.RequireRole(role.Doctor, role.Admin), CreateMedicalRecord)
		records.GET("/:patientId", ListMedicalRecords)
	}
}

/*
* Save the upload under an opaque uuid filename and return its path
* The stored reference is a stub string, not a served URL
 */
func saveUpload(c *gin.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", err
	}
	dir := os.Getenv("UPLOAD_DIR")
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dest := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}
	return dest, nil
}

/*
* Title and notes arrive as form fields alongside the optional file
* The authenticated doctor or admin is stamped as the creator
 */
func CreateMedicalRecord(c *gin.Context) {
	fileURL := ""
	if c.ContentType() == "multipart/form-data" {
		saved, err := saveUpload(c)
		if err != nil {
			log.Println("Error saving upload:", err)
			c.JSON(http.StatusBadRequest, util.FailedResponse(util.ValidationError("could not save uploaded file")))
			return
		}
		fileURL = saved
	}
	title := c.PostForm("title")
	notes := c.PostForm("notes")

	actor := middleware.CurrentActor(c)
	view, err := services.CreateMedicalRecord(c.Request.Context(), actor, c.Param("patientId"), title, notes, fileURL)
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(view))
}

func ListMedicalRecords(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	views, err := services.ListMedicalRecords(c.Request.Context(), actor, c.Param("patientId"))
	if err != nil {
		c.JSON(util.StatusOf(err), util.FailedResponse(err))
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(views))
}
