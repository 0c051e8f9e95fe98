package common

import (
	"context"

	"autostore/shipsync/internal/business"
	"autostore/shipsync/internal/domains/common/job"
	"autostore/shipsync/internal/domains/common/response"
	"autostore/shipsync/pkg/logger"
)

// Deps Handler 依赖集合（显式注入，不走 Context 传递）
type Deps struct {
	Logger   logger.Logger
	Delivery *business.DeliveryService
}

// HandlerServProc Handler 构造函数类型
type HandlerServProc func(ctx context.Context, meta *job.Meta, payload interface{}, deps *Deps) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	GetProcess() *response.Response
}
