package errorutil

import (
	"errors"
	"fmt"
)

// Error 错误结构（包含可重试标记）
type Error struct {
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Retryable  bool   `json:"retryable"`
	DevDetails string `json:"dev_details,omitempty"`
}

// 错误码
const (
	CodeInternal = 500 // 内部/协作方错误
	CodeInvalid  = 400 // 参数或业务规则错误
	CodeDecode   = 422 // 协作方响应解码失败（边界处快速失败）
)

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Retriable 创建可重试错误（网络错误、临时故障等）
func Retriable(message string) *Error {
	return &Error{
		Code:      CodeInternal,
		Message:   message,
		Retryable: true,
	}
}

// NonRetriable 创建不可重试错误（参数错误、业务规则错误等）
func NonRetriable(message string) *Error {
	return &Error{
		Code:      CodeInvalid,
		Message:   message,
		Retryable: false,
	}
}

// DecodeFailed 创建解码错误
// 协作方响应不符合约定结构时使用，不允许按"空结果"处理
func DecodeFailed(message string, details string) *Error {
	return &Error{
		Code:       CodeDecode,
		Message:    message,
		Retryable:  false,
		DevDetails: details,
	}
}

// IsDecode 判断是否为解码错误
func IsDecode(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeDecode
	}
	return false
}

// Wrap 包装错误（已是 Error 类型则原样返回）
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	if e, ok := err.(*Error); ok {
		return e
	}

	// 默认为不可重试错误
	return &Error{
		Code:       CodeInternal,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}

// UnWrapResponse 解包错误（用于 Response）
func UnWrapResponse(err error) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err)
}
