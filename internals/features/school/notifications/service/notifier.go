package service

import (
	"context"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	nmodel "sabana_backend/internals/features/school/notifications/model"
)

// Publisher is the realtime leg of a notification (redis pub/sub in
// production). Delivery is best effort: a publish failure is logged and the
// persisted notification row still stands.
type Publisher interface {
	Publish(ctx context.Context, channel, payload string) error
}

type redisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) Publisher {
	if rdb == nil {
		return nil
	}
	return &redisPublisher{rdb: rdb}
}

func (p *redisPublisher) Publish(ctx context.Context, channel, payload string) error {
	return p.rdb.Publish(ctx, channel, payload).Err()
}

type NotifierService struct {
	DB  *gorm.DB
	Pub Publisher
}

func NewNotifier(db *gorm.DB, pub Publisher) *NotifierService {
	return &NotifierService{DB: db, Pub: pub}
}

// NotifyUsers persists one notification per recipient and pushes each over
// the realtime channel. The DB insert is the durable part; realtime push
// failures only log.
func (s *NotifierService) NotifyUsers(ctx context.Context, schoolID uuid.UUID, recipients []uuid.UUID, title, message string, payload map[string]any) error {
	if len(recipients) == 0 {
		return nil
	}

	var payloadText *string
	if len(payload) > 0 {
		raw, err := sonic.MarshalString(payload)
		if err == nil {
			payloadText = &raw
		} else {
			log.Printf("[WARN] notification payload encode: %v", err)
		}
	}

	rows := make([]nmodel.NotificationModel, 0, len(recipients))
	for _, uid := range recipients {
		rows = append(rows, nmodel.NotificationModel{
			NotificationID:       uuid.New(),
			NotificationSchoolID: schoolID,
			NotificationUserID:   uid,
			NotificationTitle:    title,
			NotificationMessage:  message,
			NotificationPayload:  payloadText,
		})
	}
	if err := s.DB.WithContext(ctx).CreateInBatches(rows, 200).Error; err != nil {
		return err
	}

	if s.Pub == nil {
		return nil
	}
	for i := range rows {
		raw, err := sonic.MarshalString(rows[i])
		if err != nil {
			continue
		}
		channel := "notif:user:" + rows[i].NotificationUserID.String()
		if err := s.Pub.Publish(ctx, channel, raw); err != nil {
			log.Printf("[WARN] notification publish %s: %v", channel, err)
		}
	}
	return nil
}
