package httptransport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dyelens/internal/platform/errors"
)

// APIResponse is the uniform envelope for every endpoint.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
}

// RespondSuccess writes a success envelope.
func RespondSuccess(c *gin.Context, httpStatus int, data interface{}, message string) {
	if message == "" {
		message = "ok"
	}
	c.JSON(httpStatus, APIResponse{
		Success: true,
		Message: message,
		Code:    httpStatus,
		Data:    data,
	})
}

// RespondError writes a failure envelope.
func RespondError(c *gin.Context, httpStatus int, message string, data interface{}) {
	c.JSON(httpStatus, APIResponse{
		Success: false,
		Message: message,
		Code:    httpStatus,
		Data:    data,
	})
}

// RespondDomainError maps a domain error onto an HTTP status and a message
// a chat user can act on. The raw error text never reaches the client.
func RespondDomainError(c *gin.Context, err error) {
	status, message := userFacing(err)
	RespondError(c, status, message, gin.H{"kind": string(errors.KindOf(err))})
}

func userFacing(err error) (int, string) {
	switch errors.KindOf(err) {
	case errors.KindInvalidURL:
		return http.StatusBadRequest, "That link can't be used. Only https links to allowlisted image hosts are accepted."
	case errors.KindUnsafeRedirect:
		return http.StatusBadRequest, "The link redirected somewhere that isn't allowed."
	case errors.KindFetchTimeout:
		return http.StatusGatewayTimeout, "Downloading the image took too long. Please try again."
	case errors.KindFetchFailed:
		return http.StatusBadGateway, "The image could not be downloaded."
	case errors.KindTooLarge:
		return http.StatusRequestEntityTooLarge, tooLargeMessage(err)
	case errors.KindUnsupportedFormat:
		return http.StatusUnsupportedMediaType, "That file type isn't supported. PNG, JPEG, GIF, WebP and BMP images work."
	case errors.KindDecodeFailed:
		return http.StatusUnprocessableEntity, "The image could not be read. It may be corrupted."
	case errors.KindNoColors:
		return http.StatusUnprocessableEntity, "No usable colors could be found in that image."
	case errors.KindNoMatch:
		return http.StatusUnprocessableEntity, "No dye in the catalog comes close to those colors."
	case errors.KindTransport:
		return http.StatusServiceUnavailable, "The service is busy right now. Please try again in a moment."
	default:
		return http.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

// tooLargeMessage keeps the concrete limit in the reply when the error
// carries one, so the user knows what to resize.
func tooLargeMessage(err error) string {
	limit, ok := errors.LimitOf(err)
	if !ok {
		return "That image is too large."
	}
	switch limit {
	case errors.LimitBytes:
		return "That image file is too large."
	case errors.LimitDimensions:
		return "That image's dimensions are too large."
	case errors.LimitPixelCount:
		return "That image has too many pixels."
	default:
		return "That image is too large."
	}
}
