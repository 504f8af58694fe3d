package httperr

import (
	"net/http"

	"slot-swapper/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Body struct {
	Message   string `json:"message"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

type Response struct {
	Status int  `json:"-"`
	Error  Body `json:"error"`
	Detail any  `json:"detail,omitempty"`
}

var (
	ErrUnauthenticated = errs.New("unauthenticated")
	ErrTooManyRequests = errs.New("rate limit exceeded")
)

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	resp.Error.Code = codeFor(status, err)
	resp.Error.Retryable = errs.IsRetryable(err)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err onto a status through its taxonomy kind. Errors without a
// kind are infrastructure failures and never leak their message.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	AbortWithError(c, status, err, msg, errs.DetailOf(err))
}

func StatusOf(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindAuthorization:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(status int, err error) string {
	if reason := errs.ReasonOf(err); reason != "" {
		return reason
	}
	switch status {
	case http.StatusBadRequest:
		return "invalid-request"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusTooManyRequests:
		return "rate-limited"
	case http.StatusNotFound:
		return "not-found"
	default:
		return "internal"
	}
}
