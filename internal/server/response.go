package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/gravlens/internal/github"
)

// Response is the envelope of every JSON reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{Code: code, Message: message})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, message)
}

// sourceError maps a day source failure to a status code.
func sourceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var apiErr *github.APIError
	var gqlErr *github.GraphQLError
	switch {
	case errors.Is(err, github.ErrUserNotFound):
		fail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, github.ErrMissingUser):
		badRequest(c, err.Error())
	case errors.As(err, &apiErr), errors.As(err, &gqlErr):
		fail(c, http.StatusBadGateway, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
