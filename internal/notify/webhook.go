package notify

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WebhookNotifier 把事件 POST 到外部回调地址（JSON body）
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

func NewWebhookNotifier(url string, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

func (n *WebhookNotifier) Publish(ctx context.Context, ev Event) {
	resp, err := n.httpClient.R().
		SetContext(ctx).
		SetBody(ev).
		Post(n.url)
	if err != nil {
		n.logger.Warn("Failed to post event to webhook",
			zap.String("url", n.url),
			zap.String("type", ev.Type),
			zap.Error(err))
		return
	}
	if resp.IsError() {
		n.logger.Warn("Webhook returned error status",
			zap.String("url", n.url),
			zap.String("type", ev.Type),
			zap.Int("status", resp.StatusCode()))
	}
}
