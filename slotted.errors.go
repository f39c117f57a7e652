package slotted

import (
	"fmt"

	"github.com/itsatony/go-cuserr"
)

// NewTypeMismatchError creates an error for a slot value that does not hold
// the type the caller asserted.
func NewTypeMismatchError(slot string, expected, actual string) error {
	return cuserr.NewValidationError(ErrCodeSlot, ErrMsgTypeMismatch).
		WithMetadata(MetaKeySlot, slot).
		WithMetadata(MetaKeyExpectedType, expected).
		WithMetadata(MetaKeyActualType, actual)
}

// NewUnknownDynamicTagError creates an error for a substitution request naming
// a tag that was never registered on the dynamic module.
func NewUnknownDynamicTagError(tag string) error {
	return cuserr.NewValidationError(ErrCodeDynamic, ErrMsgUnknownDynamicTag).
		WithMetadata(MetaKeyTag, tag)
}

// NewTemplateNotFoundError creates an error for a missing named template.
func NewTemplateNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewTemplateExistsError creates an error for a duplicate template name.
func NewTemplateExistsError(name string) error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgTemplateExists).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewEmptyTemplateNameError creates an error for an empty template name.
func NewEmptyTemplateNameError() error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgEmptyTemplateName)
}

// NewNilTemplateRootError creates an error for registering a nil root.
func NewNilTemplateRootError(name string) error {
	return cuserr.NewValidationError(ErrCodeEngine, ErrMsgNilTemplateRoot).
		WithMetadata(MetaKeyTemplateName, name)
}

// NewTreeError creates a tree definition error, optionally wrapping a cause.
func NewTreeError(msg string, node string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeTree, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeTree, msg)
	}
	return err.WithMetadata(MetaKeyNode, node)
}

// NewCacheError creates a fragment cache backend error.
func NewCacheError(backend, operation string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeCache, ErrMsgCacheBackendFailed)
	} else {
		err = cuserr.NewInternalError(ErrCodeCache, nil)
	}
	return err.
		WithMetadata(MetaKeyBackend, backend).
		WithMetadata(MetaKeyOperation, operation)
}

// NewCacheDecodeError creates an error for a stored fragment that cannot be decoded.
func NewCacheDecodeError(backend string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeCache, ErrMsgCacheDecodeFailed).
		WithMetadata(MetaKeyBackend, backend).
		WithMetadata(MetaKeyOperation, CacheOpGet)
}

// NewCacheClosedError creates an error for use of a closed fragment cache.
func NewCacheClosedError(backend string) error {
	return cuserr.NewValidationError(ErrCodeCache, ErrMsgCacheClosed).
		WithMetadata(MetaKeyBackend, backend)
}

// NewConfigError creates a configuration error, optionally wrapping a cause.
func NewConfigError(msg string, value string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeConfig, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeConfig, msg)
	}
	if value == "" {
		return err
	}
	return err.WithMetadata(MetaKeyValue, value)
}

// typeName renders a value's dynamic type for error metadata.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
