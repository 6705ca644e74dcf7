package util

import (
	"errors"
	"os"
)

/*
* Shape every success body the same way so the frontend can consume it
* without special cases
 */
func SuccessResponse(data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"success": true,
		"data":    data,
	}
}

/*
* Shape every error body the same way
* Unknown errors never leak internals in production mode
 */
func FailedResponse(err error) map[string]interface{} {
	body := map[string]interface{}{
		"success": false,
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		body["message"] = apiErr.Message
		if apiErr.Details != nil {
			body["details"] = apiErr.Details
		}
		return body
	}
	body["message"] = "Internal server error"
	if os.Getenv("APP_ENV") != "production" && err != nil {
		body["details"] = err.Error()
	}
	return body
}
