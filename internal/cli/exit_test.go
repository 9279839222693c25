package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError(t *testing.T) {
	base := errors.New("connection refused")
	err := WrapExitError(ExitFailure, "fetch oracle cards", base)

	assert.Equal(t, "fetch oracle cards: connection refused", err.Error())
	assert.ErrorIs(t, err, base)

	bare := WrapExitError(ExitCommandError, "load configuration", nil)
	assert.Equal(t, "load configuration", bare.Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "bad config", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(WrapExitError(ExitFailure, "download failed", nil)))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain error")))

	wrapped := fmt.Errorf("outer: %w", WrapExitError(ExitCommandError, "inner", nil))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}
