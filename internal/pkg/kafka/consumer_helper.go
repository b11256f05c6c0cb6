package kafka

import (
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/pkg/metrics"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"sync"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const (
	batchSize    = 32
	batchTimeout = 1 * time.Second
	maxBackoff   = 5 * time.Second
)

// ErrSkipMessage 无法处理且重试无意义的消息，记录后直接提交
var ErrSkipMessage = errors.New("skip message")

type LogicFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// pullMessageBatch 拉取一批消息并执行业务逻辑
func pullMessageBatch(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim, logic LogicFunc) error {
	batch := make([]*sarama.ConsumerMessage, 0, batchSize)
	ticker := time.NewTicker(batchTimeout)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				if len(batch) > 0 {
					processBatch(session, batch, logic)
				}
				return nil
			}
			batch = append(batch, msg)
			if len(batch) >= batchSize {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
				ticker.Reset(batchTimeout)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				processBatch(session, batch, logic)
				batch = make([]*sarama.ConsumerMessage, 0, batchSize)
			}
		case <-session.Context().Done():
			return nil
		}
	}
}

// processBatch 并发处理一批消息，失败的消息指数退避重试直到成功或会话结束
func processBatch(session sarama.ConsumerGroupSession, messages []*sarama.ConsumerMessage, logic LogicFunc) {
	var wg sync.WaitGroup

	for _, msg := range messages {
		wg.Add(1)

		go func(m *sarama.ConsumerMessage) {
			defer wg.Done()
			ctx := logger.WithTraceID(session.Context(), fmt.Sprintf("kafka-%s-%d-%d", m.Topic, m.Partition, m.Offset))
			retryInterval := 100 * time.Millisecond

			for {
				err := logic(ctx, m)
				if err == nil {
					metrics.RecordKafkaMessage(m.Topic, "ok")
					return
				}
				if errors.Is(err, ErrSkipMessage) {
					metrics.RecordKafkaMessage(m.Topic, "skip")
					log.WarnContext(ctx, "skip kafka message", "err", err)
					return
				}
				metrics.RecordKafkaMessage(m.Topic, "retry")
				log.ErrorContext(ctx, "process message error", "err", err)

				select {
				case <-ctx.Done():
					return
				case <-time.After(retryInterval):
				}

				retryInterval *= 2
				if retryInterval > maxBackoff {
					retryInterval = maxBackoff
				}
			}
		}(msg)
	}

	wg.Wait()

	if session.Context().Err() != nil {
		return
	}
	if len(messages) > 0 {
		session.MarkMessage(messages[len(messages)-1], "")
		session.Commit()
	}
}

// ToCanalMessage 将 kafka 消息转换为 canal 消息结构体，不匹配的消息返回 ErrSkipMessage
func ToCanalMessage(msg *sarama.ConsumerMessage, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(msg.Value, &canalMsg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal canal message: %v", ErrSkipMessage, err)
	}

	if canalMsg.IsDDL || canalMsg.Table != tableName {
		return nil, fmt.Errorf("%w: table %q", ErrSkipMessage, canalMsg.Table)
	}

	if len(canalMsg.Data) == 0 {
		return nil, fmt.Errorf("%w: data is empty", ErrSkipMessage)
	}

	return &canalMsg, nil
}
