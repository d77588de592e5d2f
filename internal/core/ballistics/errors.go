package ballistics

import "errors"

var (
	ErrUnknownShellKind = errors.New("unknown shell kind")
	ErrUnknownShell     = errors.New("unknown shell")
	ErrDuplicateShell   = errors.New("duplicate shell name")
	ErrEmptyShellName   = errors.New("shell name is empty")
)
