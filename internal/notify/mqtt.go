package notify

import (
	"context"
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"roomops-data/internal/config"
)

// MQTTNotifier 把事件以 JSON 发布到 MQTT topic
type MQTTNotifier struct {
	client mqtt.Client
	topic  string
	qos    byte
	logger *zap.Logger
}

// NewMQTTNotifier 创建并连接 MQTT 客户端
func NewMQTTNotifier(cfg *config.MQTTConfig, logger *zap.Logger) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTNotifier{
		client: client,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		logger: logger,
	}, nil
}

func (n *MQTTNotifier) Publish(_ context.Context, ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		n.logger.Warn("Failed to encode event", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	token := n.client.Publish(n.topic, n.qos, false, payload)
	token.Wait()
	if token.Error() != nil {
		n.logger.Warn("Failed to publish event to MQTT",
			zap.String("topic", n.topic),
			zap.String("type", ev.Type),
			zap.Error(token.Error()))
	}
}

// Close 断开 MQTT 连接
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
