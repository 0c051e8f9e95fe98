package framework

import "time"

// Message 触发消息（框架内部流转的统一结构）
type Message struct {
	ID         string    // 消息 ID
	Queue      string    // 来源队列
	Data       []byte    // 原始触发消息数据
	ReceivedAt time.Time // 拉取时刻（用于排队时长观测）
}
