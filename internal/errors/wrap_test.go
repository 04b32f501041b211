package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrap(nil, "context"))

	wrapped := Wrap(ErrGitOperation, "checking status")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrGitOperation)
	assert.Equal(t, "checking status: git operation failed", wrapped.Error())
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Wrapf(nil, "branch %s", "main"))

	wrapped := Wrapf(ErrBranchExists, "branch %s", "update/20260314-main")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrBranchExists)
	assert.Equal(t, "branch update/20260314-main: branch already exists", wrapped.Error())
}

func TestExitCode2Error(t *testing.T) {
	t.Parallel()

	base := stderrors.New("missing message")
	wrapped := NewExitCode2Error(base)

	assert.Equal(t, "missing message", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)
	assert.True(t, IsExitCode2Error(wrapped))
	assert.True(t, IsExitCode2Error(Wrap(wrapped, "commit")))
	assert.False(t, IsExitCode2Error(base))
	assert.False(t, IsExitCode2Error(nil))
}
