package kafka

import (
	"Inkpost/internal/api/config"
	"context"
	log "log/slog"
	"sync"

	"github.com/IBM/sarama"
)

type consumerSpec struct {
	name    string
	topic   string
	group   sarama.ConsumerGroup
	handler sarama.ConsumerGroupHandler
}

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	consumers []consumerSpec
}

// NewConsumerManager 构造函数，blogs 与 likes 为 nil 时对应消费者不启动
func NewConsumerManager(cfg *config.Config, blogs *BlogsHandler, likes *LikesHandler) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)
	m := &ConsumerManager{}

	add := func(name string, spec config.KafkaConsumerSpec, handler sarama.ConsumerGroupHandler) error {
		group, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, spec.GroupID, saramaCfg)
		if err != nil {
			return err
		}
		m.consumers = append(m.consumers, consumerSpec{name: name, topic: spec.Topic, group: group, handler: handler})
		return nil
	}

	if blogs != nil {
		if err := add("blog", cfg.KafkaBlogConsumer, blogs); err != nil {
			return nil, err
		}
	}
	if likes != nil {
		if err := add("like", cfg.KafkaLikeConsumer, likes); err != nil {
			m.close()
			return nil, err
		}
	}
	return m, nil
}

// Start 阻塞运行所有消费者直到 ctx 结束
func (m *ConsumerManager) Start(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, c := range m.consumers {
		wg.Add(1)
		go func(c consumerSpec) {
			defer wg.Done()
			log.Info("kafka consumer started", "consumer", c.name, "topic", c.topic)
			go func() {
				for err := range c.group.Errors() {
					log.Error("kafka consumer group error", "consumer", c.name, "err", err)
				}
			}()
			for {
				if err := c.group.Consume(ctx, []string{c.topic}, c.handler); err != nil {
					log.Error("Error from consumer", "consumer", c.name, "err", err)
				}
				if ctx.Err() != nil {
					return
				}
			}
		}(c)
	}

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")
	m.close()
	wg.Wait()
	return nil
}

func (m *ConsumerManager) close() {
	for _, c := range m.consumers {
		if err := c.group.Close(); err != nil {
			log.Error("Failed to close consumer", "consumer", c.name, "err", err)
		}
	}
}
