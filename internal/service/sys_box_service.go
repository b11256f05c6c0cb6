package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/mongo"
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
)

type SysBoxService interface {
	GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID uint64, msgID string) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
}

// NewSysBoxService sysBox 为 nil 时所有操作返回 ErrFeatureDisabled
func NewSysBoxService(sysBox mongo.SysBoxRepo) SysBoxService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
	}
}

// GetNotificationList 获取通知列表，最新在前
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	if s.sysBoxRepo == nil {
		return nil, ErrFeatureDisabled
	}
	page, pageSize = pageParams(page, pageSize)
	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	list, err := s.sysBoxRepo.GetNotificationList(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		d := &dto.SysBoxDTO{}
		_ = copier.Copy(d, m)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
		if m.SenderID == 0 {
			d.SenderName = "系统通知"
		}
		res = append(res, d)
	}

	return res, nil
}

// GetUnreadCount 获取未读数
func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.SysBoxUnreadDTO, error) {
	if s.sysBoxRepo == nil {
		return nil, ErrFeatureDisabled
	}
	count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读，他人的通知视为不存在
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID uint64, msgID string) error {
	if s.sysBoxRepo == nil {
		return ErrFeatureDisabled
	}
	if msgID == "" {
		return ErrParamInvalid
	}
	err := s.sysBoxRepo.MarkAsRead(ctx, userID, msgID)
	if errors.Is(err, mongoDB.ErrNoDocuments) {
		return ErrSysBoxNotFound
	}
	return err
}

// MarkAllRead 一键已读
func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if s.sysBoxRepo == nil {
		return ErrFeatureDisabled
	}
	return s.sysBoxRepo.MarkAllAsRead(ctx, userID)
}
