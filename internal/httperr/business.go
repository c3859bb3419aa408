package httperr

import "errors"

// BusinessError is a request-lifecycle rule violation identified by a
// stable machine-readable code, e.g. "invalid_state" or
// "precondition_failed". Handlers match it with errors.As and map the
// code onto the HTTP error envelope.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err is a BusinessError carrying code.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
