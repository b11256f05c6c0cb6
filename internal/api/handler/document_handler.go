package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	docSvc service.DocumentService
}

func NewDocumentHandler(docSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{docSvc: docSvc}
}

func (s *DocumentHandler) Tree(c *gin.Context) {
	tree, err := s.docSvc.ListTree(c.Request.Context(), currentUser(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

func (s *DocumentHandler) CreateFolder(c *gin.Context) {
	var req dto.CreateFolderDTO
	if !bindJSON(c, &req) {
		return
	}
	folder, err := s.docSvc.CreateFolder(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, folder)
}

func (s *DocumentHandler) RenameFolder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RenameFolderDTO
	if !bindJSON(c, &req) {
		return
	}
	if err := s.docSvc.RenameFolder(c.Request.Context(), currentUser(c), id, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *DocumentHandler) DeleteFolder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.docSvc.DeleteFolder(c.Request.Context(), currentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *DocumentHandler) CreateFile(c *gin.Context) {
	var req dto.CreateFileDTO
	if !bindJSON(c, &req) {
		return
	}
	file, err := s.docSvc.CreateFile(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, file)
}

func (s *DocumentHandler) GetFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := s.docSvc.GetFile(c.Request.Context(), currentUser(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, file)
}

func (s *DocumentHandler) UpdateFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateFileDTO
	if !bindJSON(c, &req) {
		return
	}
	file, err := s.docSvc.UpdateFile(c.Request.Context(), currentUser(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, file)
}

func (s *DocumentHandler) DeleteFile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.docSvc.DeleteFile(c.Request.Context(), currentUser(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ExportPDF 以附件形式返回 PDF
func (s *DocumentHandler) ExportPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	name, pdf, err := s.docSvc.ExportPDF(c.Request.Context(), currentUser(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(name)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *DocumentHandler) ImportURL(c *gin.Context) {
	var req dto.ImportURLDTO
	if !bindJSON(c, &req) {
		return
	}
	file, err := s.docSvc.ImportURL(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessCreated(c, file)
}
