package core

import (
	"errors"
)

var (
	ErrUnsupported    = errors.New("unsupported by the active backend")
	ErrAlreadySetup   = errors.New("resource already set up")
	ErrNotSetup       = errors.New("resource not set up")
	ErrOutOfRange     = errors.New("index out of range")
	ErrInvalidDesc    = errors.New("invalid descriptor")
	ErrNativeFailure  = errors.New("native driver failure")
	ErrDuplicateSlot  = errors.New("attachment slot already in use")
	ErrPoolExhausted  = errors.New("descriptor pool exhausted")
	ErrContextClosed  = errors.New("device context is closed")
	ErrDeviceReleased = errors.New("owning device was released")
	ErrUnknown        = errors.New("unknown")
)
