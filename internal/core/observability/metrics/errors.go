package metrics

import "errors"

var ErrAlreadyObserved = errors.New("metrics: live projectile source already registered")
