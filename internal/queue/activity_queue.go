package queue

import (
	"context"
	"time"

	"event-platform/internal/model"
	"event-platform/pkg/logger"

	"go.uber.org/zap"
)

type Delivery struct {
	Data *model.Activity
	Ack  func()
	Nack func(requeue bool)
}

type ActivityQueue interface {
	// 發送活動紀錄到隊列
	Publish(ctx context.Context, activity *model.Activity) error
	// 訂閱活動紀錄隊列，ctx 結束時關閉回傳的 channel
	Subscribe(ctx context.Context) (<-chan Delivery, error)
}

// DefaultMaxRetryCount memory 與 Redis 兩種隊列共用的投遞上限
const DefaultMaxRetryCount = 5

// MemoryQueueConfig 零值欄位使用預設
type MemoryQueueConfig struct {
	MaxRetryCount int           // 投遞達此次數仍被 Nack 就丟棄
	RetryDelay    time.Duration // 第一次重送的延遲，之後每次加倍
}

func defaultMemoryQueueConfig() MemoryQueueConfig {
	return MemoryQueueConfig{
		MaxRetryCount: DefaultMaxRetryCount,
		RetryDelay:    200 * time.Millisecond,
	}
}

type memoryItem struct {
	activity *model.Activity
	attempts int
}

type MemoryActivityQueue struct {
	ch  chan memoryItem
	cfg MemoryQueueConfig
	log *zap.Logger
}

// NewMemoryActivityQueue config 可為 nil
func NewMemoryActivityQueue(bufferSize int, config *MemoryQueueConfig) ActivityQueue {
	cfg := defaultMemoryQueueConfig()
	if config != nil {
		if config.MaxRetryCount > 0 {
			cfg.MaxRetryCount = config.MaxRetryCount
		}
		if config.RetryDelay > 0 {
			cfg.RetryDelay = config.RetryDelay
		}
	}
	return &MemoryActivityQueue{
		ch:  make(chan memoryItem, bufferSize),
		cfg: cfg,
		log: logger.WithComponent("mq"),
	}
}

// Publish 隊列滿時等待，直到 ctx 結束
func (q *MemoryActivityQueue) Publish(ctx context.Context, activity *model.Activity) error {
	select {
	case q.ch <- memoryItem{activity: activity}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryActivityQueue) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-q.ch:
				if !ok {
					return
				}
				item.attempts++

				d := Delivery{
					Data: item.activity,
					Ack:  func() {},
					Nack: func(requeue bool) {
						if requeue {
							q.requeue(item)
						}
					},
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// requeue 延遲後放回隊列，超過投遞上限視為毒藥消息丟棄
func (q *MemoryActivityQueue) requeue(item memoryItem) {
	if item.attempts >= q.cfg.MaxRetryCount {
		q.log.Warn("discard poison message",
			zap.String("request_id", item.activity.RequestID.String()),
			zap.String("kind", string(item.activity.Kind)),
			zap.Int("attempts", item.attempts),
		)
		return
	}

	delay := q.cfg.RetryDelay << (item.attempts - 1)
	time.AfterFunc(delay, func() {
		// 非阻塞放回，隊列已滿就丟棄
		select {
		case q.ch <- item:
		default:
			q.log.Warn("queue full, drop requeued message",
				zap.String("request_id", item.activity.RequestID.String()))
		}
	})
}
