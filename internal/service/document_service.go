package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/browser"
	"Inkpost/internal/pkg/consts"
	"Inkpost/internal/pkg/importer"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	log "log/slog"
	"path"
	"strings"

	"github.com/jinzhu/copier"
)

// PDFPrinter 无头浏览器打印能力
type PDFPrinter interface {
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// ArticleFetcher 网页正文抓取能力
type ArticleFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*importer.Article, error)
}

type DocumentService interface {
	GetDocument(ctx context.Context, userID, fileID uint64) (*model.File, error)
	ListTree(ctx context.Context, userID uint64) (*dto.TreeDTO, error)
	CreateFolder(ctx context.Context, userID uint64, req *dto.CreateFolderDTO) (*dto.FolderDTO, error)
	RenameFolder(ctx context.Context, userID, folderID uint64, name string) error
	DeleteFolder(ctx context.Context, userID, folderID uint64) error
	CreateFile(ctx context.Context, userID uint64, req *dto.CreateFileDTO) (*dto.FileDTO, error)
	GetFile(ctx context.Context, userID, fileID uint64) (*dto.FileDTO, error)
	UpdateFile(ctx context.Context, userID, fileID uint64, req *dto.UpdateFileDTO) (*dto.FileDTO, error)
	DeleteFile(ctx context.Context, userID, fileID uint64) error
	ExportPDF(ctx context.Context, userID, fileID uint64) (string, []byte, error)
	ImportURL(ctx context.Context, userID uint64, req *dto.ImportURLDTO) (*dto.FileDTO, error)
}

type documentServiceImpl struct {
	folderRepo repository.FolderRepo
	fileRepo   repository.FileRepo
	printer    PDFPrinter
	fetcher    ArticleFetcher
}

// NewDocumentService printer 或 fetcher 为 nil 时对应功能返回 ErrFeatureDisabled
func NewDocumentService(folderRepo repository.FolderRepo, fileRepo repository.FileRepo, printer PDFPrinter, fetcher ArticleFetcher) DocumentService {
	return &documentServiceImpl{
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		printer:    printer,
		fetcher:    fetcher,
	}
}

func (s *documentServiceImpl) GetDocument(ctx context.Context, userID, fileID uint64) (*model.File, error) {
	file, err := s.fileRepo.GetFile(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

func (s *documentServiceImpl) ListTree(ctx context.Context, userID uint64) (*dto.TreeDTO, error) {
	folders, err := s.folderRepo.ListFolders(ctx, userID)
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.ListFiles(ctx, userID)
	if err != nil {
		return nil, err
	}

	tree := &dto.TreeDTO{
		Folders: make([]*dto.FolderDTO, 0, len(folders)),
		Files:   make([]*dto.FileDTO, 0, len(files)),
	}
	if err = copier.Copy(&tree.Folders, &folders); err != nil {
		return nil, err
	}
	if err = copier.Copy(&tree.Files, &files); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *documentServiceImpl) CreateFolder(ctx context.Context, userID uint64, req *dto.CreateFolderDTO) (*dto.FolderDTO, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrParamInvalid
	}
	parentID, err := s.ownedFolder(ctx, userID, req.ParentID)
	if err != nil {
		return nil, err
	}

	folder := &model.Folder{UserID: userID, ParentID: parentID, Name: name}
	if err = s.folderRepo.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	out := &dto.FolderDTO{}
	_ = copier.Copy(out, folder)
	return out, nil
}

func (s *documentServiceImpl) RenameFolder(ctx context.Context, userID, folderID uint64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrParamInvalid
	}
	folder, err := s.folderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}
	return s.folderRepo.RenameFolder(ctx, userID, folderID, name)
}

// DeleteFolder 删除目录及其全部子目录与文件
func (s *documentServiceImpl) DeleteFolder(ctx context.Context, userID, folderID uint64) error {
	folder, err := s.folderRepo.GetFolder(ctx, userID, folderID)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}
	count, err := s.folderRepo.DeleteFolderTree(ctx, userID, folderID)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "folder tree deleted", "folderID", folderID, "folders", count)
	return nil
}

func (s *documentServiceImpl) CreateFile(ctx context.Context, userID uint64, req *dto.CreateFileDTO) (*dto.FileDTO, error) {
	name := normalizeFileName(req.Name)
	if name == "" {
		return nil, ErrParamInvalid
	}
	folderID, err := s.ownedFolder(ctx, userID, req.FolderID)
	if err != nil {
		return nil, err
	}

	content := consts.DefaultFileContent
	if req.Content != nil {
		content = *req.Content
	}

	file := &model.File{UserID: userID, FolderID: folderID, Name: name, Content: content}
	if err = s.fileRepo.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	return toFileDTO(file), nil
}

func (s *documentServiceImpl) GetFile(ctx context.Context, userID, fileID uint64) (*dto.FileDTO, error) {
	file, err := s.GetDocument(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}
	return toFileDTO(file), nil
}

// UpdateFile FolderID 为 0 时移动到根目录
func (s *documentServiceImpl) UpdateFile(ctx context.Context, userID, fileID uint64, req *dto.UpdateFileDTO) (*dto.FileDTO, error) {
	file, err := s.GetDocument(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := normalizeFileName(*req.Name)
		if name == "" {
			return nil, ErrParamInvalid
		}
		file.Name = name
	}
	if req.Content != nil {
		file.Content = *req.Content
	}
	if req.FolderID != nil {
		if *req.FolderID == 0 {
			file.FolderID = nil
		} else {
			folderID, err := s.ownedFolder(ctx, userID, req.FolderID)
			if err != nil {
				return nil, err
			}
			file.FolderID = folderID
		}
	}

	if err = s.fileRepo.UpdateFile(ctx, file); err != nil {
		return nil, err
	}
	return toFileDTO(file), nil
}

// DeleteFile 已发布的博客保留
func (s *documentServiceImpl) DeleteFile(ctx context.Context, userID, fileID uint64) error {
	if _, err := s.GetDocument(ctx, userID, fileID); err != nil {
		return err
	}
	return s.fileRepo.DeleteFile(ctx, userID, fileID)
}

// ExportPDF 返回下载文件名与 PDF 内容
func (s *documentServiceImpl) ExportPDF(ctx context.Context, userID, fileID uint64) (string, []byte, error) {
	if s.printer == nil {
		return "", nil, ErrFeatureDisabled
	}
	file, err := s.GetDocument(ctx, userID, fileID)
	if err != nil {
		return "", nil, err
	}

	body, err := util.MarkdownToHTML(file.Content)
	if err != nil {
		return "", nil, err
	}
	title := strings.TrimSuffix(file.Name, path.Ext(file.Name))
	page, err := browser.DocumentPage(title, body)
	if err != nil {
		return "", nil, err
	}

	pdf, err := s.printer.PrintPDF(ctx, page)
	if err != nil {
		return "", nil, err
	}
	return title + ".pdf", pdf, nil
}

func (s *documentServiceImpl) ImportURL(ctx context.Context, userID uint64, req *dto.ImportURLDTO) (*dto.FileDTO, error) {
	if s.fetcher == nil {
		return nil, ErrFeatureDisabled
	}
	folderID, err := s.ownedFolder(ctx, userID, req.FolderID)
	if err != nil {
		return nil, err
	}

	article, err := s.fetcher.Fetch(ctx, req.URL)
	if err != nil {
		log.WarnContext(ctx, "article import failed", "url", req.URL, "err", err)
		return nil, ErrImportFailed
	}

	name := util.NormalizeSlug(article.Title)
	if name == "" {
		name = "imported"
	}
	file := &model.File{
		UserID:   userID,
		FolderID: folderID,
		Name:     util.TruncateRunes(name, 250) + consts.DefaultFileExt,
		Content:  article.Markdown,
	}
	if err = s.fileRepo.CreateFile(ctx, file); err != nil {
		return nil, err
	}
	log.InfoContext(ctx, "article imported", "fileID", file.ID, "url", article.SourceURL)
	return toFileDTO(file), nil
}

// ownedFolder nil 或 0 表示根目录；非空时必须属于当前用户
func (s *documentServiceImpl) ownedFolder(ctx context.Context, userID uint64, folderID *uint64) (*uint64, error) {
	if folderID == nil || *folderID == 0 {
		return nil, nil
	}
	folder, err := s.folderRepo.GetFolder(ctx, userID, *folderID)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, ErrFolderNotFound
	}
	id := folder.ID
	return &id, nil
}

// normalizeFileName 没有扩展名时补 .md
func normalizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if path.Ext(name) == "" {
		name += consts.DefaultFileExt
	}
	return name
}

func toFileDTO(file *model.File) *dto.FileDTO {
	out := &dto.FileDTO{}
	_ = copier.Copy(out, file)
	return out
}

