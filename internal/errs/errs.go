package errs

import "errors"

// Kind 错误类别，handler 层据此映射 HTTP 状态码
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindConflict
)

// Error 携带类别的业务错误
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound 资源不存在
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Forbidden 无权限
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Validation 参数或状态校验失败
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict 与当前数据状态冲突
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf 提取错误类别，非业务错误返回 KindUnknown
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
