package grade

import "errors"

var (
	ErrGradeNotFound   = errors.New("grade not found")
	ErrGradeNameExists = errors.New("grade with this name already exists")
	ErrGradeInUse      = errors.New("grade is referenced by salary master rates")
)
