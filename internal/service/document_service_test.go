package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/importer"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrinter struct {
	html string
}

func (f *fakePrinter) PrintPDF(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("%PDF-1.4"), nil
}

type fakeFetcher struct {
	article *importer.Article
	err     error
}

func (f *fakeFetcher) Fetch(context.Context, string) (*importer.Article, error) {
	return f.article, f.err
}

func u64(v uint64) *uint64 { return &v }

func newDocumentFixture(printer PDFPrinter, fetcher ArticleFetcher) (DocumentService, *fakeFolderRepo, *fakeFileRepo) {
	folders := newFakeFolderRepo()
	files := newFakeFileRepo()
	return NewDocumentService(folders, files, printer, fetcher), folders, files
}

func TestCreateFileDefaults(t *testing.T) {
	svc, _, _ := newDocumentFixture(nil, nil)
	ctx := context.Background()

	tests := []struct {
		name, in, want string
	}{
		{"adds extension", "draft", "draft.md"},
		{"keeps extension", "notes.txt", "notes.txt"},
		{"trims", "  idea  ", "idea.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.CreateFile(ctx, 1, &dto.CreateFileDTO{Name: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Name)
			assert.Equal(t, "# New Document\n\nStart writing here...", out.Content)
			assert.Nil(t, out.FolderID)
		})
	}

	_, err := svc.CreateFile(ctx, 1, &dto.CreateFileDTO{Name: " "})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestFolderOwnershipIsChecked(t *testing.T) {
	svc, folders, files := newDocumentFixture(nil, nil)
	ctx := context.Background()
	foreign := &model.Folder{UserID: 2, Name: "theirs"}
	require.NoError(t, folders.CreateFolder(ctx, foreign))

	_, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "sub", ParentID: &foreign.ID})
	assert.ErrorIs(t, err, ErrFolderNotFound)

	_, err = svc.CreateFile(ctx, 1, &dto.CreateFileDTO{Name: "a", FolderID: &foreign.ID})
	assert.ErrorIs(t, err, ErrFolderNotFound)

	file := files.add(&model.File{UserID: 1, Name: "a.md"})
	_, err = svc.UpdateFile(ctx, 1, file.ID, &dto.UpdateFileDTO{FolderID: &foreign.ID})
	assert.ErrorIs(t, err, ErrFolderNotFound)

	assert.ErrorIs(t, svc.RenameFolder(ctx, 1, foreign.ID, "mine now"), ErrFolderNotFound)
	assert.ErrorIs(t, svc.DeleteFolder(ctx, 1, foreign.ID), ErrFolderNotFound)
}

func TestUpdateFileMovesAndEdits(t *testing.T) {
	svc, _, files := newDocumentFixture(nil, nil)
	ctx := context.Background()

	folder, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "drafts"})
	require.NoError(t, err)
	file := files.add(&model.File{UserID: 1, Name: "a.md", Content: "old"})

	out, err := svc.UpdateFile(ctx, 1, file.ID, &dto.UpdateFileDTO{
		Name:     strPtr("b"),
		Content:  strPtr("new"),
		FolderID: &folder.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "b.md", out.Name)
	assert.Equal(t, "new", out.Content)
	require.NotNil(t, out.FolderID)
	assert.Equal(t, folder.ID, *out.FolderID)

	out, err = svc.UpdateFile(ctx, 1, file.ID, &dto.UpdateFileDTO{FolderID: u64(0)})
	require.NoError(t, err)
	assert.Nil(t, out.FolderID, "folder id 0 moves the file to the root")

	_, err = svc.UpdateFile(ctx, 2, file.ID, &dto.UpdateFileDTO{Content: strPtr("x")})
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestDeleteFolderRemovesSubtree(t *testing.T) {
	svc, folders, _ := newDocumentFixture(nil, nil)
	ctx := context.Background()

	root, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "root"})
	require.NoError(t, err)
	child, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "child", ParentID: &root.ID})
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "grandchild", ParentID: &child.ID})
	require.NoError(t, err)
	keep, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "keep"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFolder(ctx, 1, root.ID))
	assert.Len(t, folders.folders, 1)
	assert.Contains(t, folders.folders, keep.ID)
}

func TestListTree(t *testing.T) {
	svc, _, files := newDocumentFixture(nil, nil)
	ctx := context.Background()
	_, err := svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "b"})
	require.NoError(t, err)
	_, err = svc.CreateFolder(ctx, 1, &dto.CreateFolderDTO{Name: "a"})
	require.NoError(t, err)
	files.add(&model.File{UserID: 1, Name: "z.md", Content: "hidden"})
	files.add(&model.File{UserID: 2, Name: "other.md"})

	tree, err := svc.ListTree(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tree.Folders, 2)
	assert.Equal(t, "a", tree.Folders[0].Name)
	require.Len(t, tree.Files, 1)
	assert.Empty(t, tree.Files[0].Content)
}

func TestExportPDF(t *testing.T) {
	ctx := context.Background()

	disabled, _, _ := newDocumentFixture(nil, nil)
	_, _, err := disabled.ExportPDF(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrFeatureDisabled)

	printer := &fakePrinter{}
	svc, _, files := newDocumentFixture(printer, nil)
	file := files.add(&model.File{UserID: 1, Name: "report.md", Content: "# Quarterly\n\n**bold**"})

	name, pdf, err := svc.ExportPDF(ctx, 1, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	assert.Contains(t, printer.html, "<strong>bold</strong>")
	assert.Contains(t, printer.html, "<title>report</title>")
}

func TestImportURL(t *testing.T) {
	ctx := context.Background()

	disabled, _, _ := newDocumentFixture(nil, nil)
	_, err := disabled.ImportURL(ctx, 1, &dto.ImportURLDTO{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrFeatureDisabled)

	failing, _, _ := newDocumentFixture(nil, &fakeFetcher{err: errors.New("timeout")})
	_, err = failing.ImportURL(ctx, 1, &dto.ImportURLDTO{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrImportFailed)

	fetcher := &fakeFetcher{article: &importer.Article{
		Title:     "A Great Read!",
		Markdown:  "# A Great Read!\n\nbody",
		SourceURL: "https://example.com/read",
	}}
	svc, _, _ := newDocumentFixture(nil, fetcher)
	out, err := svc.ImportURL(ctx, 1, &dto.ImportURLDTO{URL: "https://example.com/read"})
	require.NoError(t, err)
	assert.Equal(t, "a-great-read.md", out.Name)
	assert.Equal(t, "# A Great Read!\n\nbody", out.Content)
}
