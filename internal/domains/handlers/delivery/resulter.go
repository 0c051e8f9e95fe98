package delivery

import (
	"context"
	"fmt"

	"autostore/shipsync/internal/business"
)

// ReconcileOutput 最终输出结构
type ReconcileOutput struct {
	Matched   int `json:"matched"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Unknown   int `json:"unknown,omitempty"`
}

// ReconcileResulter 任务结果处理器（实现 framework.Resulter）
type ReconcileResulter struct {
	srcData interface{}
	dstData interface{}
}

// NewReconcileResulter 创建任务结果处理器
func NewReconcileResulter() *ReconcileResulter {
	return &ReconcileResulter{}
}

// Set 设置运行汇总
func (r *ReconcileResulter) Set(ctx context.Context, data interface{}) error {
	r.srcData = data

	report, ok := data.(*business.RunReport)
	if !ok {
		return fmt.Errorf("unexpected result data type: %T", data)
	}

	r.dstData = &ReconcileOutput{
		Matched:   report.Matched,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Unknown:   report.Unknown,
	}

	return nil
}

// Get 获取格式化后的输出
func (r *ReconcileResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}
