package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carf-backend/apierr"
)

// ErrorBody is the error shape the front end reads.
type ErrorBody struct {
	Detail string      `json:"detail"`
	Code   apierr.Code `json:"code,omitempty"`
	Raw    string      `json:"raw,omitempty"`
}

// Error writes err with the status of its code and aborts the chain. Errors
// without a code are internal failures.
func Error(c *gin.Context, err error) {
	code := apierr.CodeOf(err)
	status := http.StatusInternalServerError
	if code != "" {
		status = apierr.Status(code)
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Detail: err.Error(),
		Code:   code,
		Raw:    apierr.RawOf(err),
	})
}

func NotFound(c *gin.Context, detail string) {
	Error(c, apierr.New(apierr.NotFound, detail, nil))
}

func BadRequest(c *gin.Context, detail string) {
	Error(c, apierr.New(apierr.InvalidRequest, detail, nil))
}
