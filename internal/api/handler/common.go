package handler

import (
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/service"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// pathID 解析路径中的正整数 ID，失败时直接写入 400
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := util.ParseUint64(c.Param(name))
	if err != nil || id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

// bindJSON 绑定并校验请求体
func bindJSON(c *gin.Context, req any) bool {
	return bindWith(c, req, c.ShouldBindJSON(req))
}

// bindQuery 绑定并校验查询参数
func bindQuery(c *gin.Context, req any) bool {
	return bindWith(c, req, c.ShouldBindQuery(req))
}

func bindWith(c *gin.Context, req any, err error) bool {
	if err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			err = fmt.Errorf("%w: %v", service.ErrParamInvalid, err)
		}
		response.Error(c, err)
		return false
	}
	if err := util.ValidateDTO(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func currentUser(c *gin.Context) uint64 {
	return c.GetUint64(consts.UserIDKey)
}
