package github

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken = errors.New("github: token is required")
	ErrMissingUser  = errors.New("github: username is required")
	ErrUserNotFound = errors.New("github: user not found")
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: api error: %s", e.Status)
}

// GraphQLError is the first error of a GraphQL error payload.
type GraphQLError struct {
	Message string
}

func (e *GraphQLError) Error() string {
	return "github: graphql error: " + e.Message
}
