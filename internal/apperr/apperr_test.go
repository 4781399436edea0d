package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:      http.StatusNotFound,
		KindUnauthorized:  http.StatusUnauthorized,
		KindMisconfigured: http.StatusInternalServerError,
		KindRateLimited:   http.StatusTooManyRequests,
		KindValidation:    http.StatusBadRequest,
		KindInternal:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, Status(kind), kind)
	}
}

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("loading medicine: %w", NotFound("Medicine not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestIs_MatchesSentinel(t *testing.T) {
	sentinel := Unauthorized("Incorrect username or password")
	err := fmt.Errorf("login: %w", Unauthorized("Incorrect username or password"))
	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(err, Unauthorized("something else")))
}

func TestPublicMessage_HidesInternalDetails(t *testing.T) {
	err := Internal("failed to create user", errors.New("pq: connection refused"))
	assert.Equal(t, "Internal server error", PublicMessage(err))
	assert.Equal(t, "User not found", PublicMessage(NotFound("User not found")))
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}
