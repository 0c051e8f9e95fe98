package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Client RabbitMQ 客户端封装
// 协作方调用统一走请求/应答（Request），通知类消息走单向发布（Emit）
type Client struct {
	conn *amqp.Connection
	chn  *amqp.Channel
}

// Envelope 消息信封（event 为协作方的处理器路由键）
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// NewClient 创建客户端并打开通道
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial failed: %w", err)
	}

	chn, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp open channel failed: %w", err)
	}

	return &Client{
		conn: conn,
		chn:  chn,
	}, nil
}

// Close 关闭通道与连接
func (c *Client) Close() error {
	if err := c.chn.Close(); err != nil {
		return err
	}
	return c.conn.Close()
}

// CreateQueue 声明持久化队列
func (c *Client) CreateQueue(queueName string) error {
	_, err := c.chn.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	return err
}

// Emit 单向发布（fire-and-forget，不等待应答）
func (c *Client) Emit(ctx context.Context, queueName string, event string, payload interface{}) error {
	body, err := json.Marshal(&Envelope{Event: event, Data: payload})
	if err != nil {
		return fmt.Errorf("marshal envelope failed: %w", err)
	}

	return c.chn.PublishWithContext(
		ctx,
		"",        // exchange
		queueName, // routing key
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// Request 请求/应答调用
// 每次请求使用独立通道 + 独占应答队列，返回时随通道一并回收
// （通道关闭即注销消费者，auto-delete 队列随之删除；迟到应答不会占用共享通道）；
// ctx 超时或取消即失败返回
func (c *Client) Request(ctx context.Context, queueName string, event string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(&Envelope{Event: event, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope failed: %w", err)
	}

	chn, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("amqp open channel failed: %w", err)
	}
	defer chn.Close()

	// 独占应答队列（消费者注销后自动删除）
	replyQueue, err := chn.QueueDeclare(
		"",    // 服务器生成队列名
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare reply queue failed: %w", err)
	}

	deliveries, err := chn.Consume(
		replyQueue.Name,
		"",    // consumer
		true,  // auto-ack
		true,  // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("consume reply queue failed: %w", err)
	}

	corrID := uuid.New().String()

	err = chn.PublishWithContext(
		ctx,
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: corrID,
			ReplyTo:       replyQueue.Name,
			Body:          body,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("publish request failed: %w", err)
	}

	return awaitReply(ctx, deliveries, corrID)
}

// awaitReply 等待匹配 correlation id 的应答
func awaitReply(ctx context.Context, deliveries <-chan amqp.Delivery, corrID string) ([]byte, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("rpc wait reply: %w", ctx.Err())
		case d, ok := <-deliveries:
			if !ok {
				return nil, fmt.Errorf("reply channel closed")
			}
			// 串台的应答直接丢弃
			if d.CorrelationId != corrID {
				continue
			}
			return d.Body, nil
		}
	}
}
