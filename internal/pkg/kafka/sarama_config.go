package kafka

import (
	"Inkpost/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

// newSaramaConfig 统一初始化消费者组配置，手动提交位点
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()

	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetNewest
	c.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}

	setSeconds(&c.Consumer.Group.Session.Timeout, kafkaCfg.Consumer.SessionTimeout)
	setSeconds(&c.Consumer.Group.Heartbeat.Interval, kafkaCfg.Consumer.HeartbeatInterval)
	setSeconds(&c.Consumer.Group.Rebalance.Timeout, kafkaCfg.Consumer.RebalanceTimeout)
	setSeconds(&c.Consumer.MaxProcessingTime, kafkaCfg.Consumer.MaxProcessingTime)
	c.Consumer.Offsets.AutoCommit.Enable = false

	return c
}

// setSeconds 未配置时保留 sarama 默认值
func setSeconds(target *time.Duration, seconds int) {
	if seconds > 0 {
		*target = time.Duration(seconds) * time.Second
	}
}
