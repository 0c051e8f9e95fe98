package framework

import (
	"context"
	"fmt"
)

// PreProcessor 函数链处理器
// Handler 把校验与执行步骤串成链，任一步失败即短路
type PreProcessor struct {
	steps []ProcessorFunc
}

// NewPreProcessor 创建函数链处理器
func NewPreProcessor(steps ...ProcessorFunc) *PreProcessor {
	return &PreProcessor{steps: steps}
}

// Run 按序执行函数链
func (p *PreProcessor) Run(ctx context.Context) error {
	for i, step := range p.steps {
		if err := step(ctx); err != nil {
			return fmt.Errorf("step[%d] failed: %w", i, err)
		}
	}
	return nil
}
