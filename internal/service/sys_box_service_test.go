package service

import (
	"Inkpost/internal/pkg/mongo"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type fakeSysBoxRepo struct {
	items      []*mongo.SysBoxModel
	limit      int64
	offset     int64
	markedAll  bool
	markResult error
}

func (f *fakeSysBoxRepo) UpsertNotification(_ context.Context, msg *mongo.SysBoxModel) error {
	f.items = append(f.items, msg)
	return nil
}

func (f *fakeSysBoxRepo) GetNotificationList(_ context.Context, _ uint64, limit, offset int64) ([]*mongo.SysBoxModel, error) {
	f.limit, f.offset = limit, offset
	return f.items, nil
}

func (f *fakeSysBoxRepo) MarkAsRead(context.Context, uint64, string) error {
	return f.markResult
}

func (f *fakeSysBoxRepo) MarkAllAsRead(context.Context, uint64) error {
	f.markedAll = true
	return nil
}

func (f *fakeSysBoxRepo) GetUnreadCount(context.Context, uint64) (int64, error) {
	return int64(len(f.items)), nil
}

func TestSysBoxList(t *testing.T) {
	id := primitive.NewObjectID()
	repo := &fakeSysBoxRepo{items: []*mongo.SysBoxModel{
		{ID: id, SenderID: 3, SenderName: "zoe", Type: 1, TargetID: 9, Content: "My post",
			CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
	}}
	svc := NewSysBoxService(repo)

	list, err := svc.GetNotificationList(context.Background(), 1, 3, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(20), repo.limit)
	assert.Equal(t, int64(40), repo.offset)
	require.Len(t, list, 1)
	assert.Equal(t, id.Hex(), list[0].ID)
	assert.Equal(t, "zoe", list[0].SenderName)
	assert.Equal(t, "2024-01-02T03:04:05Z", list[0].CreatedAt)

	unread, err := svc.GetUnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread.UnreadCount)
}

func TestSysBoxMarkRead(t *testing.T) {
	repo := &fakeSysBoxRepo{markResult: mongoDB.ErrNoDocuments}
	svc := NewSysBoxService(repo)
	ctx := context.Background()

	assert.ErrorIs(t, svc.MarkRead(ctx, 1, "abc"), ErrSysBoxNotFound)
	assert.ErrorIs(t, svc.MarkRead(ctx, 1, ""), ErrParamInvalid)

	repo.markResult = nil
	assert.NoError(t, svc.MarkRead(ctx, 1, primitive.NewObjectID().Hex()))
	require.NoError(t, svc.MarkAllRead(ctx, 1))
	assert.True(t, repo.markedAll)
}

func TestSysBoxDisabled(t *testing.T) {
	svc := NewSysBoxService(nil)
	_, err := svc.GetUnreadCount(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFeatureDisabled)
}
