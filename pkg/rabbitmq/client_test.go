package rabbitmq

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitReply_Matched(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 1)
	deliveries <- amqp.Delivery{CorrelationId: "corr-1", Body: []byte(`{"status":"success"}`)}

	body, err := awaitReply(context.Background(), deliveries, "corr-1")

	require.NoError(t, err)
	assert.Equal(t, []byte(`{"status":"success"}`), body)
}

// TestAwaitReply_SkipsStaleReplies 迟到/串台的应答只被丢弃，不会当作本次结果返回
func TestAwaitReply_SkipsStaleReplies(t *testing.T) {
	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{CorrelationId: "corr-old", Body: []byte(`stale-1`)}
	deliveries <- amqp.Delivery{CorrelationId: "corr-older", Body: []byte(`stale-2`)}
	deliveries <- amqp.Delivery{CorrelationId: "corr-2", Body: []byte(`fresh`)}

	body, err := awaitReply(context.Background(), deliveries, "corr-2")

	require.NoError(t, err)
	assert.Equal(t, []byte(`fresh`), body)
}

// TestAwaitReply_CtxTimeout 超时即失败返回，不会无限等待
func TestAwaitReply_CtxTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := awaitReply(ctx, make(chan amqp.Delivery), "corr-3")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestAwaitReply_ChannelClosed 消费通道被关闭（通道回收）时报错而非挂起
func TestAwaitReply_ChannelClosed(t *testing.T) {
	deliveries := make(chan amqp.Delivery)
	close(deliveries)

	_, err := awaitReply(context.Background(), deliveries, "corr-4")

	require.Error(t, err)
}
