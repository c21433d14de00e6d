package errcode

import "fmt"

// Err is a coded error the HTTP layer can serialize directly.
type Err struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("code: %d, msg: %s", e.Code, e.Msg)
}

func NewErr(code int, msg string) *Err {
	return &Err{Code: code, Msg: msg}
}

// NewCustomErr wraps a free-form message under the generic custom code.
func NewCustomErr(msg string) *Err {
	return NewErr(CodeCustom, msg)
}

const (
	CodeOK           = 200
	CodeBadParams    = 10001
	CodeUnauthorized = 10003
	CodeNotFound     = 10004
	CodeConflict     = 10009
	CodeCustom       = 20000
	CodeInternal     = 50000
)

var (
	ErrOK        = NewErr(CodeOK, "success")
	ErrBadParams = NewErr(CodeBadParams, "invalid request params")
	ErrInternal  = NewErr(CodeInternal, "internal server error")
)
