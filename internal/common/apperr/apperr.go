package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别。调用方根据类别决定重试 / 重新提示 / 中止整个操作。
type Kind int

const (
	KindUnknown    Kind = iota
	KindValidation      // 字段长度 / 格式 / 范围错误，可重新提示
	KindNotFound        // 按 id / 姓氏等未命中，可提供新建或重试
	KindConflict        // 重复 VIN、重复关单等冲突，可重新提示或放弃
	KindIntegrity       // 落库时引用的行不存在，直接中止
	KindUnavailable     // 存储持续出错被熔断，稍后重试
)

// 稳定错误码（跨 CLI / HTTP 传播，不随文案变化）。
const (
	CodeInvalidField      = "invalid_field"
	CodeInvalidSelection  = "invalid_selection"
	CodeDuplicateVin      = "duplicate_vin"
	CodeInvalidYear       = "invalid_year"
	CodeNotAnInteger      = "not_an_integer"
	CodeInvalidOdometer   = "invalid_odometer"
	CodeEmptyComplaint    = "empty_complaint"
	CodeUnknownCustomer   = "unknown_customer"
	CodeUnknownCar        = "unknown_car"
	CodeUnknownRequest    = "unknown_request"
	CodeUnknownMechanic   = "unknown_mechanic"
	CodeAlreadyClosed     = "already_closed"
	CodeInvalidBill       = "invalid_bill"
	CodeInvalidMechanicID = "invalid_mechanic_id"
	CodeInvalidLimit      = "invalid_limit"
	CodeStoreUnavailable  = "store_unavailable"
)

// Error 核心业务错误。所有从核心返回的错误都是该类型（或包装了该类型），
// 交互层不需要解析 free-text。
type Error struct {
	Kind Kind
	Code string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Validationf 构造校验类错误。
func Validationf(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf 构造未命中类错误。
func NotFoundf(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf 构造冲突类错误。
func Conflictf(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Unavailablef 构造暂不可用类错误。
func Unavailablef(code, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnavailable, Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Integrity 包装底层存储错误为完整性错误。
func Integrity(code string, err error) *Error {
	return &Error{Kind: KindIntegrity, Code: code, Msg: "referenced row does not exist", Err: err}
}

// KindOf 提取错误类别；非业务错误返回 KindUnknown。
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf 提取稳定错误码；非业务错误返回空串。
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode 判断错误是否携带指定错误码。
func IsCode(err error, code string) bool {
	return CodeOf(err) == code
}
