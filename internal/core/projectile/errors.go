package projectile

import "errors"

var (
	ErrNilHost    = errors.New("projectile: nil host")
	ErrNilShell   = errors.New("projectile: nil shell")
	ErrNilStepper = errors.New("projectile: nil stepper")
)
