package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type InteractionHandler struct {
	interactionSvc service.InteractionService
}

func NewInteractionHandler(interactionSvc service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionSvc: interactionSvc}
}

// Track 匿名用户只能浏览与分享
func (s *InteractionHandler) Track(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.InteractionDTO
	if !bindJSON(c, &req) {
		return
	}
	out, err := s.interactionSvc.Track(c.Request.Context(), currentUser(c), id, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *InteractionHandler) LikeStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := s.interactionSvc.LikeStatus(c.Request.Context(), currentUser(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}
