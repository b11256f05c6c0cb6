package service

import (
	"Inkpost/internal/api/dto"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	uploaded map[string]int64
	deleted  []string
	failKey  string
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploaded: map[string]int64{}}
}

func (f *fakeStore) UploadTemp(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) (string, error) {
	n, err := io.Copy(io.Discard, reader)
	if err != nil {
		return "", err
	}
	f.uploaded[objectName] = n
	return objectName, nil
}

func (f *fakeStore) DeleteTemp(_ context.Context, objectName string) error {
	if objectName == f.failKey {
		return errors.New("minio unavailable")
	}
	f.deleted = append(f.deleted, objectName)
	return nil
}

func (f *fakeStore) TempURL(objectName string) string {
	return "http://minio.local/temp/" + objectName
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadSEOImage(t *testing.T) {
	testRedis.FlushAll()
	store := newFakeStore()
	svc := NewMediaService(store)
	ctx := context.Background()

	out, err := svc.UploadSEOImage(ctx, bytes.NewReader(pngBytes(t, 2400, 600)))
	require.NoError(t, err)
	assert.Equal(t, 1200, out.Width)
	assert.Equal(t, 300, out.Height)
	assert.True(t, strings.HasPrefix(out.Key, "seo/"))
	assert.True(t, strings.HasSuffix(out.Key, ".jpg"))
	assert.Equal(t, "http://minio.local/temp/"+out.Key, out.URL)
	assert.Contains(t, store.uploaded, out.Key)
	assert.NotEmpty(t, testRedis.HGet("media:temp", out.Key))

	_, err = svc.UploadSEOImage(ctx, strings.NewReader("plain text, not an image"))
	assert.ErrorIs(t, err, ErrFileNotSupported)

	_, err = NewMediaService(nil).UploadSEOImage(ctx, bytes.NewReader(pngBytes(t, 10, 10)))
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}

func TestCleanTemp(t *testing.T) {
	testRedis.FlushAll()
	now := time.Date(2024, 7, 1, 3, 0, 0, 0, time.Local)
	fixedNow(t, now)
	store := newFakeStore()
	store.failKey = "stuck"
	svc := NewMediaService(store)

	put := func(key string, age time.Duration) {
		meta, _ := json.Marshal(&dto.MediaTempMetadata{CreatedAt: now.Add(-age).Unix()})
		testRedis.HSet("media:temp", key, string(meta))
	}
	put("old", 25*time.Hour)
	put("fresh", time.Hour)
	put("stuck", 48*time.Hour)
	testRedis.HSet("media:temp", "broken", "{")

	n, err := svc.CleanTemp(context.Background(), 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"old"}, store.deleted)
	keys, err := testRedis.HKeys("media:temp")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"fresh", "stuck", "broken"}, keys)
}
