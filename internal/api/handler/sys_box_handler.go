package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

// SysBoxHandler 站内通知，mongo 未启用时统一返回功能未启用
type SysBoxHandler struct {
	sysBoxSvc service.SysBoxService
}

func NewSysBoxHandler(sysBoxSvc service.SysBoxService) *SysBoxHandler {
	return &SysBoxHandler{sysBoxSvc: sysBoxSvc}
}

func (s *SysBoxHandler) List(c *gin.Context) {
	var query dto.NotificationQuery
	if !bindQuery(c, &query) {
		return
	}
	list, err := s.sysBoxSvc.GetNotificationList(c.Request.Context(), currentUser(c), query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *SysBoxHandler) Unread(c *gin.Context) {
	unread, err := s.sysBoxSvc.GetUnreadCount(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

func (s *SysBoxHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadDTO
	if !bindJSON(c, &req) {
		return
	}
	if err := s.sysBoxSvc.MarkRead(c.Request.Context(), currentUser(c), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *SysBoxHandler) MarkAllRead(c *gin.Context) {
	if err := s.sysBoxSvc.MarkAllRead(c.Request.Context(), currentUser(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
