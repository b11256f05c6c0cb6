package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUnauthorized        = errors.New("请先登录")
	ErrPasswordIncorrect   = errors.New("邮箱或密码错误")
	ErrTokenInvalid        = errors.New("Token 无效或已过期")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrFileNotFound        = errors.New("文件不存在")
	ErrFolderNotFound      = errors.New("文件夹不存在")
	ErrBlogNotFound        = errors.New("博客不存在")
	ErrSysBoxNotFound      = errors.New("系统通知不存在")
	ErrSlugConflict        = errors.New("无法生成唯一的博客地址，请修改标题后重试")
	ErrEmailExist          = errors.New("邮箱已注册")
	ErrUsernameExist       = errors.New("用户名已存在")
	ErrInteractionConflict = errors.New("操作冲突，请重试")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrFeatureDisabled     = errors.New("功能未启用")
	ErrImportFailed        = errors.New("文章导入失败")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrUnauthorized:        Unauthorized,
	ErrPasswordIncorrect:   Unauthorized,
	ErrTokenInvalid:        Unauthorized,
	ErrUserNotFound:        NotFound,
	ErrFileNotFound:        NotFound,
	ErrFolderNotFound:      NotFound,
	ErrBlogNotFound:        NotFound,
	ErrSysBoxNotFound:      NotFound,
	ErrSlugConflict:        Conflict,
	ErrEmailExist:          Conflict,
	ErrUsernameExist:       Conflict,
	ErrInteractionConflict: Conflict,
	ErrFileNotSupported:    BadRequest,
	ErrFeatureDisabled:     BadRequest,
	ErrImportFailed:        BadRequest,
	UnExpectedError:        InternalServerError,
}

// CodeOf 沿错误链查找已登记的哨兵错误，未登记时返回 nil
func CodeOf(err error) (int, error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if code, ok := ErrorMap[e]; ok {
			return code, e
		}
	}
	return InternalServerError, nil
}
