package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeExists     = errors.New("employee with this ID or email already exists")
	ErrPasswordAlreadySet = errors.New("password has already been set for this employee")
	ErrNoFieldsToUpdate   = errors.New("no fields provided for update")
)
