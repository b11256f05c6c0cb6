package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	publishSvc service.PublishService
	blogSvc    service.BlogService
	searchSvc  service.SearchService
}

func NewBlogHandler(publishSvc service.PublishService, blogSvc service.BlogService, searchSvc service.SearchService) *BlogHandler {
	return &BlogHandler{
		publishSvc: publishSvc,
		blogSvc:    blogSvc,
		searchSvc:  searchSvc,
	}
}

func (s *BlogHandler) Publish(c *gin.Context) {
	var req dto.PublishDTO
	if !bindJSON(c, &req) {
		return
	}
	blog, err := s.publishSvc.Publish(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, blog)
}

func (s *BlogHandler) Search(c *gin.Context) {
	var query dto.SearchQuery
	if !bindQuery(c, &query) {
		return
	}
	out, err := s.searchSvc.Search(c.Request.Context(), currentUser(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *BlogHandler) PublicList(c *gin.Context) {
	var query dto.BlogListQuery
	if !bindQuery(c, &query) {
		return
	}
	out, err := s.blogSvc.PublicList(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *BlogHandler) BySlug(c *gin.Context) {
	blog, err := s.blogSvc.BySlug(c.Request.Context(), currentUser(c), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, blog)
}

func (s *BlogHandler) Mine(c *gin.Context) {
	var query dto.BlogListQuery
	if !bindQuery(c, &query) {
		return
	}
	out, err := s.blogSvc.Mine(c.Request.Context(), currentUser(c), &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, out)
}

func (s *BlogHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	blog, err := s.blogSvc.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, blog)
}

// ByFile 未发布时 data 为 null
func (s *BlogHandler) ByFile(c *gin.Context) {
	fileID, ok := pathID(c, "fileId")
	if !ok {
		return
	}
	blog, err := s.blogSvc.ByFile(c.Request.Context(), currentUser(c), fileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, blog)
}

func (s *BlogHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBlogDTO
	if !bindJSON(c, &req) {
		return
	}
	blog, err := s.blogSvc.Update(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, blog)
}

func (s *BlogHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.blogSvc.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func queryDays(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	return days
}
