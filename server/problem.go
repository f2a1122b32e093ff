package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Problem is an RFC 7807 problem document
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance,omitempty"`
}

func (p Problem) Error() string { return p.Detail }

func newProblem(status int, instance, detail string) Problem {
	return Problem{
		Type:     "https://developer.mozilla.org/en-US/docs/Web/HTTP/Reference/Status/" + strconv.Itoa(status),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

func abortWithProblem(c *gin.Context, status int, detail string) {
	p := newProblem(status, c.Request.URL.Path, detail)
	c.Header("Content-Type", "application/problem+json")
	c.AbortWithStatusJSON(status, p)
}
