package httpx

import (
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: login required
	Error  string  `json:"error"`
	Notice *Notice `json:"notice,omitempty"`
}

// Error aborts the request with a JSON HTTPError body.
func Error(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg})
}

// ErrorNotice is Error plus a banner the page shows for d.
func ErrorNotice(c *gin.Context, status int, msg string, d time.Duration) {
	c.AbortWithStatusJSON(status, HTTPError{Error: msg, Notice: Failure(msg, d)})
}

const (
	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice is a transient banner the page shows and hides after DismissAfterMS.
// swagger:model
type Notice struct {
	Kind           string `json:"kind" example:"success"`
	Text           string `json:"text" example:"Product added successfully!"`
	DismissAfterMS int64  `json:"dismiss_after_ms" example:"3000"`
}

func Success(text string, d time.Duration) *Notice {
	return &Notice{Kind: NoticeSuccess, Text: text, DismissAfterMS: d.Milliseconds()}
}

func Failure(text string, d time.Duration) *Notice {
	return &Notice{Kind: NoticeError, Text: text, DismissAfterMS: d.Milliseconds()}
}
