package service

import (
	"errors"
	"fmt"
)

// ==================== 错误分类 ====================

// 业务错误基类，controller 统一用 errors.Is 映射到 HTTP 状态码
var (
	// ErrAuthRequired 未登录（正常情况下被中间件拦截，服务层兜底）
	ErrAuthRequired = errors.New("需要登录")

	// ErrPermissionDenied 角色不符（如非供货商调用价格表导入）
	ErrPermissionDenied = errors.New("没有权限执行该操作")

	// ErrValidation 入参或文档校验失败
	ErrValidation = errors.New("校验失败")

	// ErrNotFound 目标实体不存在
	ErrNotFound = errors.New("记录不存在")

	// ErrFeedFetch 价格表源不可达
	ErrFeedFetch = errors.New("价格表源不可达")
)

// validationErr 在 ErrValidation 上挂具体原因
func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFoundErr 在 ErrNotFound 上挂具体对象
func notFoundErr(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}
