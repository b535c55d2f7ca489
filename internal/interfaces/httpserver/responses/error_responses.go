package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"customgpt-actions/internal/utils/platformerrors"
)

// ErrorResponse is the error envelope. Status is always "error" so the
// consuming chat client can branch on a single field.
type ErrorResponse struct {
	Status    string `json:"status"`
	Detail    string `json:"detail"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// HandleError maps domain errors onto the wire contract. Validation failures
// are real HTTP 400s. Provider and internal failures return HTTP 200 with an
// error envelope: the consuming chat client surfaces non-2xx responses as an
// opaque tool failure instead of relaying the detail to the user.
func HandleError(reqCtx *gin.Context, err error) {
	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		reqCtx.AbortWithStatusJSON(http.StatusOK, ErrorResponse{
			Status: "error",
			Detail: "generation failed due to an internal error",
		})
		return
	}

	resp := ErrorResponse{
		Status:    "error",
		Detail:    platformErr.Message,
		Code:      platformErr.GetUUID(),
		RequestID: platformErr.GetRequestID(),
	}

	switch platformErr.GetErrorType() {
	case platformerrors.ErrorTypeValidation:
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, resp)
	case platformerrors.ErrorTypeExternal:
		reqCtx.AbortWithStatusJSON(http.StatusOK, resp)
	default:
		resp.Detail = "generation failed due to an internal error"
		reqCtx.AbortWithStatusJSON(http.StatusOK, resp)
	}
}

// HandleBindError reports a malformed or incomplete request body.
func HandleBindError(reqCtx *gin.Context, err error) {
	reqCtx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Status: "error",
		Detail: err.Error(),
	})
}
