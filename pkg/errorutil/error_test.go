package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetriable(t *testing.T) {
	err := Retriable("rabbit connection reset")

	assert.Equal(t, CodeInternal, err.Code)
	assert.True(t, err.Retryable)
	assert.Equal(t, "rabbit connection reset", err.Error())
}

func TestNonRetriable(t *testing.T) {
	err := NonRetriable("date_from without date_to")

	assert.Equal(t, CodeInvalid, err.Code)
	assert.False(t, err.Retryable)
}

func TestDecodeFailed(t *testing.T) {
	err := DecodeFailed("unexpected response shape", "data is a string, want array")

	assert.Equal(t, CodeDecode, err.Code)
	assert.False(t, err.Retryable)
	assert.Equal(t, "data is a string, want array", err.DevDetails)
}

func TestIsDecode(t *testing.T) {
	assert.True(t, IsDecode(DecodeFailed("bad shape", "")))
	// 包装一层也能识别
	assert.True(t, IsDecode(fmt.Errorf("fetch orders: %w", DecodeFailed("bad shape", ""))))
	assert.False(t, IsDecode(Retriable("timeout")))
	assert.False(t, IsDecode(errors.New("plain")))
	assert.False(t, IsDecode(nil))
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil))

	// 已是 Error 类型则原样返回
	orig := NonRetriable("bad input")
	assert.Same(t, orig, Wrap(orig))

	wrapped := Wrap(errors.New("plain failure"))
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.Equal(t, "plain failure", wrapped.Message)
	assert.False(t, wrapped.Retryable)
}
