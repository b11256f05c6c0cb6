package service

import (
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/redis"
	"Inkpost/internal/repository"
	"context"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

var testRedis *miniredis.Miniredis

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	testRedis = mr
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	code := m.Run()
	mr.Close()
	os.Exit(code)
}

func fixedNow(t *testing.T, now time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = prev })
}

// ---- users ----

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}}
}

func (f *fakeUserRepo) GetUserById(_ context.Context, id uint64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		c := *u
		return &c, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUserWithRootFolder(_ context.Context, user *model.User, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrDuplicateKey
		}
	}
	f.nextID++
	user.ID = f.nextID
	c := *user
	f.users[user.ID] = &c
	return nil
}

// ---- refresh tokens ----

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*model.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *model.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := *token
	f.tokens[token.TokenHash] = &c
	return nil
}

func (f *fakeTokenRepo) GetByHash(_ context.Context, hash string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[hash]; ok {
		c := *t
		return &c, nil
	}
	return nil, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, hash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[hash]
	if !ok || t.RevokedAt != nil {
		return false, nil
	}
	now := time.Now()
	t.RevokedAt = &now
	return true, nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID uint64) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var hashes []string
	now := time.Now()
	for h, t := range f.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
			hashes = append(hashes, h)
		}
	}
	return hashes, nil
}

func (f *fakeTokenRepo) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for h, t := range f.tokens {
		if t.ExpiresAt.Before(before) {
			delete(f.tokens, h)
			n++
		}
	}
	return n, nil
}

// ---- documents ----

type fakeFolderRepo struct {
	folders map[uint64]*model.Folder
	nextID  uint64
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[uint64]*model.Folder{}}
}

func (f *fakeFolderRepo) GetFolder(_ context.Context, userID, id uint64) (*model.Folder, error) {
	if fo, ok := f.folders[id]; ok && fo.UserID == userID {
		c := *fo
		return &c, nil
	}
	return nil, nil
}

func (f *fakeFolderRepo) ListFolders(_ context.Context, userID uint64) ([]*model.Folder, error) {
	out := make([]*model.Folder, 0)
	for _, fo := range f.folders {
		if fo.UserID == userID {
			c := *fo
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFolderRepo) CreateFolder(_ context.Context, folder *model.Folder) error {
	f.nextID++
	folder.ID = f.nextID
	c := *folder
	f.folders[folder.ID] = &c
	return nil
}

func (f *fakeFolderRepo) RenameFolder(_ context.Context, userID, id uint64, name string) error {
	if fo, ok := f.folders[id]; ok && fo.UserID == userID {
		fo.Name = name
	}
	return nil
}

func (f *fakeFolderRepo) DeleteFolderTree(_ context.Context, userID, id uint64) (int, error) {
	queue := []uint64{id}
	removed := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, fo := range f.folders {
			if fo.ParentID != nil && *fo.ParentID == cur && fo.UserID == userID {
				queue = append(queue, fo.ID)
			}
		}
		delete(f.folders, cur)
		removed++
	}
	return removed, nil
}

type fakeFileRepo struct {
	files  map[uint64]*model.File
	nextID uint64
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[uint64]*model.File{}}
}

func (f *fakeFileRepo) add(file *model.File) *model.File {
	_ = f.CreateFile(context.Background(), file)
	return file
}

func (f *fakeFileRepo) GetFile(_ context.Context, userID, id uint64) (*model.File, error) {
	if fi, ok := f.files[id]; ok && fi.UserID == userID {
		c := *fi
		return &c, nil
	}
	return nil, nil
}

func (f *fakeFileRepo) ListFiles(_ context.Context, userID uint64) ([]*model.File, error) {
	out := make([]*model.File, 0)
	for _, fi := range f.files {
		if fi.UserID == userID {
			c := *fi
			c.Content = ""
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeFileRepo) CreateFile(_ context.Context, file *model.File) error {
	f.nextID++
	file.ID = f.nextID
	c := *file
	f.files[file.ID] = &c
	return nil
}

func (f *fakeFileRepo) UpdateFile(_ context.Context, file *model.File) error {
	c := *file
	f.files[file.ID] = &c
	return nil
}

func (f *fakeFileRepo) DeleteFile(_ context.Context, userID, id uint64) error {
	if fi, ok := f.files[id]; ok && fi.UserID == userID {
		delete(f.files, id)
	}
	return nil
}

// ---- blogs ----

// fakeBlogRepo 模拟 slug 与 (user_id, file_id) 两个唯一索引；过滤条件只记录不求值
type fakeBlogRepo struct {
	mu         sync.Mutex
	posts      map[uint64]*model.BlogPost
	nextID     uint64
	beforeSave func(post *model.BlogPost)
	findResult []*model.BlogPost
	lastFilter repository.BlogFilter
	lastOrder  string
	listCalls  int
	count      int64
	createN    int
	saveN      int
}

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{posts: map[uint64]*model.BlogPost{}}
}

func clonePost(p *model.BlogPost) *model.BlogPost {
	c := *p
	c.Tags = append([]string(nil), p.Tags...)
	return &c
}

func (f *fakeBlogRepo) add(p *model.BlogPost) *model.BlogPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.posts[p.ID] = clonePost(p)
	return p
}

func (f *fakeBlogRepo) conflicts(p *model.BlogPost) bool {
	for _, existing := range f.posts {
		if existing.ID == p.ID {
			continue
		}
		if existing.Slug == p.Slug {
			return true
		}
		if p.ID == 0 && existing.UserID == p.UserID && existing.FileID == p.FileID {
			return true
		}
	}
	return false
}

func (f *fakeBlogRepo) Create(_ context.Context, post *model.BlogPost) error {
	if f.beforeSave != nil {
		hook := f.beforeSave
		f.beforeSave = nil
		hook(post)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createN++
	if f.conflicts(post) {
		return repository.ErrDuplicateKey
	}
	f.nextID++
	post.ID = f.nextID
	f.posts[post.ID] = clonePost(post)
	return nil
}

func (f *fakeBlogRepo) Save(_ context.Context, post *model.BlogPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveN++
	if f.conflicts(post) {
		return repository.ErrDuplicateKey
	}
	f.posts[post.ID] = clonePost(post)
	return nil
}

func (f *fakeBlogRepo) GetByID(_ context.Context, id uint64) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.posts[id]; ok {
		return clonePost(p), nil
	}
	return nil, nil
}

func (f *fakeBlogRepo) GetByUserFile(_ context.Context, userID, fileID uint64) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.UserID == userID && p.FileID == fileID {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (f *fakeBlogRepo) GetPublishedBySlug(_ context.Context, slug string) (*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.Slug == slug && p.IsPublished() {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (f *fakeBlogRepo) sorted() []*model.BlogPost {
	out := make([]*model.BlogPost, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeBlogRepo) Find(_ context.Context, filter repository.BlogFilter) ([]*model.BlogPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.findResult != nil {
		return f.findResult, nil
	}
	return f.sorted(), nil
}

func (f *fakeBlogRepo) List(_ context.Context, filter repository.BlogFilter, order string, limit, offset int) ([]*model.BlogPost, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	f.lastOrder = order
	f.listCalls++
	all := f.sorted()
	total := int64(len(all))
	if offset >= len(all) {
		return []*model.BlogPost{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeBlogRepo) Count(_ context.Context, _ repository.BlogFilter) (int64, error) {
	return f.count, nil
}

func (f *fakeBlogRepo) PluckIDs(_ context.Context, _ repository.BlogFilter) ([]uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint64, 0, len(f.posts))
	for _, p := range f.sorted() {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

// ---- interactions ----

type fakeInteractionRepo struct {
	blogs *fakeBlogRepo
	likes map[[2]uint64]bool
	err   error
	days  []time.Time
}

func newFakeInteractionRepo(blogs *fakeBlogRepo) *fakeInteractionRepo {
	return &fakeInteractionRepo{blogs: blogs, likes: map[[2]uint64]bool{}}
}

func (f *fakeInteractionRepo) Apply(_ context.Context, userID, blogID uint64, action string, day time.Time) (*repository.InteractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.blogs.mu.Lock()
	defer f.blogs.mu.Unlock()
	post, ok := f.blogs.posts[blogID]
	if !ok || !post.IsPublished() {
		return nil, repository.ErrBlogNotVisible
	}
	f.days = append(f.days, day)

	res := &repository.InteractionResult{}
	switch action {
	case "like":
		key := [2]uint64{userID, blogID}
		if f.likes[key] {
			delete(f.likes, key)
			if post.Likes > 0 {
				post.Likes--
			}
		} else {
			f.likes[key] = true
			post.Likes++
			res.IsLiked = true
		}
	case "view":
		post.Views++
	case "share":
		post.Shares++
	}
	res.Views, res.Likes, res.Shares = post.Views, post.Likes, post.Shares
	return res, nil
}

func (f *fakeInteractionRepo) IsLiked(_ context.Context, userID, blogID uint64) (bool, error) {
	return f.likes[[2]uint64{userID, blogID}], nil
}

// ---- analytics ----

type fakeAnalyticsRepo struct {
	rows     []*model.DailyAnalytics
	totals   *repository.AnalyticsTotals
	from, to time.Time
	sumCalls int
}

func (f *fakeAnalyticsRepo) ListDaily(_ context.Context, blogID uint64, from, to time.Time) ([]*model.DailyAnalytics, error) {
	f.from, f.to = from, to
	out := make([]*model.DailyAnalytics, 0)
	for _, r := range f.rows {
		if r.BlogID == blogID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalyticsRepo) SumDaily(_ context.Context, _ []uint64, from, to time.Time) (*repository.AnalyticsTotals, error) {
	f.sumCalls++
	f.from, f.to = from, to
	if f.totals == nil {
		return &repository.AnalyticsTotals{}, nil
	}
	return f.totals, nil
}
