package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	salarydomain "github.com/smallbiznis/dentalpay/internal/salary/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorWrappedSentinel(t *testing.T) {
	status, body := mapError(fmt.Errorf("submit: %w", salarydomain.ErrInvalidChooseAgain))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "would_choose_specialty_again", body.Errors[0].Field)
	assert.Equal(t, "invalid_would_choose_specialty_again", body.Errors[0].Code)
}

func TestMapErrorHidesInternalDetail(t *testing.T) {
	status, body := mapError(errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", body.Error)
	assert.Empty(t, body.Errors)
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(salarydomain.ErrInvalidState)
	assert.Equal(t, "validation_error", typ)
	assert.Equal(t, "invalid_state", code)

	typ, code = classifyErrorForLog(ErrNotFound)
	assert.Equal(t, "not_found", typ)
	assert.Equal(t, "not_found", code)
}

func TestParseOptionalPositiveInt(t *testing.T) {
	v, err := parseOptionalPositiveInt("")
	assert.NoError(t, err)
	assert.Zero(t, v)

	v, err = parseOptionalPositiveInt(" 3 ")
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = parseOptionalPositiveInt("-1")
	assert.Error(t, err)
}
