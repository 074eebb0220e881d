package error

import "fmt"

type Error struct {
	Code    uint32
	Message string
}

func New(code uint32, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (this *Error) Error() string {
	return fmt.Sprintf("[%d], %s", this.Code, this.Message)
}

// Wrap. pass through an *Error untouched, tag anything else with code
func Wrap(err error, code uint32) *Error {
	if serr, ok := err.(*Error); ok {
		return serr
	}
	return New(code, "%s", err)
}

// HasCode. whether err is an *Error carrying the given code
func HasCode(err error, code uint32) bool {
	serr, ok := err.(*Error)
	if !ok {
		return false
	}
	return serr.Code == code
}
