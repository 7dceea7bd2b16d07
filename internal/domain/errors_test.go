package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/inbar-marom/botverify/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInfra(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.Infra("running build", cause)

	assert.True(t, domain.IsInfra(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "running build: connection refused", err.Error())
}

func TestIsInfra_Wrapped(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", domain.Infra("scanning files", errors.New("permission denied")))
	assert.True(t, domain.IsInfra(err))
}

func TestIsInfra_PlainError(t *testing.T) {
	assert.False(t, domain.IsInfra(errors.New("just a check failure")))
	assert.False(t, domain.IsInfra(nil))
}
