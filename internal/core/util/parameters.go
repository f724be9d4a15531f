package util

import "github.com/gin-gonic/gin"

// ParamsToMap binds the JSON request body onto one of the request models,
// for example request.CreateTodoRequest or request.SignUpRequest.
func ParamsToMap[T any](c *gin.Context) (T, error) {
	var params T

	if err := c.ShouldBindJSON(&params); err != nil {
		return params, err
	}

	return params, nil
}
