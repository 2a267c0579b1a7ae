package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scholarfind/internal/common"
)

func TestIDFromPath(t *testing.T) {
	id := common.NewUUID()

	request := httptest.NewRequest("GET", "/scholarships/"+id.String(), nil)
	parsed, err := idFromPath(request, 2)
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	request = httptest.NewRequest("PUT", "/applications/"+id.String()+"/status", nil)
	parsed, err = idFromPath(request, 2)
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestIDFromPath_Invalid(t *testing.T) {
	request := httptest.NewRequest("GET", "/scholarships/not-a-uuid", nil)
	_, err := idFromPath(request, 2)
	require.True(t, common.Is(err, common.CodeNotFound), "expected not found, got %v", err)

	request = httptest.NewRequest("GET", "/scholarships", nil)
	_, err = idFromPath(request, 2)
	require.True(t, common.Is(err, common.CodeNotFound), "expected not found, got %v", err)
}

func TestParseDeadline(t *testing.T) {
	parsed, err := parseDeadline("2026-12-31")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), parsed)

	parsed, err = parseDeadline("2026-12-31T18:30:00Z")
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 12, 31, 18, 30, 0, 0, time.UTC), parsed)

	_, err = parseDeadline("next friday")
	require.Error(t, err)
}
