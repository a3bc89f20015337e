package notify

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisNotifier 把事件以 XADD 写入 Redis Stream。
// 事件字段序列化为字符串（stream values 只接受扁平键值）。
type RedisNotifier struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

func NewRedisNotifier(client *redis.Client, stream string, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, ev Event) {
	data, err := json.Marshal(ev.Data)
	if err != nil {
		n.logger.Warn("Failed to encode event data", zap.String("type", ev.Type), zap.Error(err))
		return
	}
	err = n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]interface{}{
			"type":        ev.Type,
			"occurred_at": ev.OccurredAt.Format("2006-01-02T15:04:05.000Z07:00"),
			"data":        string(data),
		},
	}).Err()
	if err != nil {
		n.logger.Warn("Failed to publish event to redis stream",
			zap.String("stream", n.stream),
			zap.String("type", ev.Type),
			zap.Error(err))
	}
}
