package slotted

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTypeMismatchError(t *testing.T) {
	err := NewTypeMismatchError("count", "int", "string")
	assert.Contains(t, err.Error(), ErrMsgTypeMismatch)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))

	for key, want := range map[string]string{
		MetaKeySlot:         "count",
		MetaKeyExpectedType: "int",
		MetaKeyActualType:   "string",
	} {
		got, ok := customErr.GetMetadata(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
}

func TestNewTreeError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := NewTreeError(ErrMsgTreeEmptyNode, "root.children[0]", nil)
		assert.Contains(t, err.Error(), ErrMsgTreeEmptyNode)

		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		node, ok := customErr.GetMetadata(MetaKeyNode)
		assert.True(t, ok)
		assert.Equal(t, "root.children[0]", node)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("yaml: bad indent")
		err := NewTreeError(ErrMsgTreeParseFailed, "root", cause)
		assert.Contains(t, err.Error(), ErrMsgTreeParseFailed)
		assert.ErrorIs(t, err, cause)
	})
}

func TestNewCacheError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCacheError(CacheBackendRedis, CacheOpSet, cause)
	assert.ErrorIs(t, err, cause)

	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	backend, _ := customErr.GetMetadata(MetaKeyBackend)
	op, _ := customErr.GetMetadata(MetaKeyOperation)
	assert.Equal(t, CacheBackendRedis, backend)
	assert.Equal(t, CacheOpSet, op)

	assert.Error(t, NewCacheError(CacheBackendMemory, CacheOpGet, nil))
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError(ErrMsgInvalidPolicy, "", nil)
	var customErr *cuserr.CustomError
	require.True(t, errors.As(err, &customErr))
	_, ok := customErr.GetMetadata(MetaKeyValue)
	assert.False(t, ok)

	err = NewConfigError(ErrMsgInvalidPolicy, "always", nil)
	require.True(t, errors.As(err, &customErr))
	value, ok := customErr.GetMetadata(MetaKeyValue)
	assert.True(t, ok)
	assert.Equal(t, "always", value)
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "nil", typeName(nil))
	assert.Equal(t, "int", typeName(1))
	assert.Equal(t, "*slotted.Tag", typeName(NewTag("p")))
}
