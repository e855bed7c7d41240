package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrNIKExists          = errors.New("NIK already registered")
	ErrInvalidScheme      = errors.New("invalid pay scheme")
)
