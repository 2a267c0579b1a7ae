package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"scholarfind/internal/common"
)

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return common.NewError(common.CodeValidation, "request body is required", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts the UUID at the given slash-separated segment index,
// counting the leading empty segment: /applications/<id>/status has the id
// at index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	parts := strings.Split(r.URL.Path, "/")
	if index >= len(parts) {
		return "", common.NewError(common.CodeNotFound, "resource not found", nil)
	}
	id, err := common.ParseUUID(parts[index])
	if err != nil {
		return "", common.NewError(common.CodeNotFound, "resource not found", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

// parseDeadline accepts RFC 3339 timestamps and bare dates.
func parseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
