package wipp_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/polusai/wipp-client/pkg/wipp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		sentinel   error
	}{
		{"unauthorized", 401, wipp.ErrAuthentication},
		{"forbidden", 403, wipp.ErrForbidden},
		{"not found", 404, wipp.ErrNotFound},
		{"bad request", 400, wipp.ErrRequestFailed},
		{"conflict", 409, wipp.ErrRequestFailed},
		{"server error", 500, wipp.ErrRequestFailed},
		{"bad gateway", 502, wipp.ErrRequestFailed},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := &wipp.APIError{StatusCode: testCase.statusCode}
			assert.ErrorIs(t, err, testCase.sentinel)
		})
	}
}

func TestAPIError_UnwrapSurvivesWrapping(t *testing.T) {
	t.Parallel()

	apiErr := &wipp.APIError{StatusCode: 404, Body: "no such collection"}
	wrapped := fmt.Errorf("fetching imagesCollections page 2: %w", apiErr)

	assert.True(t, wipp.IsNotFound(wrapped))
	assert.False(t, wipp.IsAuthentication(wrapped))
	assert.False(t, wipp.IsForbidden(wrapped))

	var target *wipp.APIError

	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, 404, target.StatusCode)
	assert.Equal(t, "no such collection", target.Body)
}

func TestAPIError_Message(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "WIPP API returned status 500",
		(&wipp.APIError{StatusCode: 500}).Error())
	assert.Equal(t, "WIPP API returned status 403: locked",
		(&wipp.APIError{StatusCode: 403, Body: "locked"}).Error())
}

func TestSentinelsAreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		wipp.ErrInvalidConfiguration,
		wipp.ErrAuthentication,
		wipp.ErrForbidden,
		wipp.ErrNotFound,
		wipp.ErrMalformedRecord,
		wipp.ErrRequestFailed,
	}

	for i, left := range sentinels {
		for j, right := range sentinels {
			if i != j {
				assert.False(t, errors.Is(left, right))
			}
		}
	}
}
