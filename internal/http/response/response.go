package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"scholarfind/internal/common"
)

// ErrorCollector counts rendered error responses, keyed by error code.
type ErrorCollector interface {
	IncError(code string)
}

var collector ErrorCollector

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error renders a coded error as the API's stable error body: per-field
// validation failures as {errors: [...]}, everything else as {message}.
// Unexpected errors degrade to a bare 500 without internal detail.
func Error(w http.ResponseWriter, err error) {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		appErr = common.NewError(common.CodeInternal, "server error", err)
	}
	if collector != nil {
		collector.IncError(string(appErr.Code))
	}
	if len(appErr.Fields) > 0 {
		fields := make([]fieldError, 0, len(appErr.Fields))
		for name, message := range appErr.Fields {
			fields = append(fields, fieldError{Field: name, Message: message})
		}
		sort.Slice(fields, func(i, j int) bool { return fields[i].Field < fields[j].Field })
		JSON(w, statusFor(appErr.Code), map[string]any{"errors": fields})
		return
	}
	message := appErr.Message
	if appErr.Code == common.CodeInternal {
		message = "server error"
	}
	JSON(w, statusFor(appErr.Code), map[string]string{"message": message})
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation, common.CodeDuplicate, common.CodeClosed:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
