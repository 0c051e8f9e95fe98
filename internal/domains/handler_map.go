package domains

import (
	"autostore/shipsync/internal/domains/common"
	"autostore/shipsync/internal/domains/handlers/delivery"
	"autostore/shipsync/pkg/model"
)

// HandlerMap 路由表（ActionType → Handler 构造函数）
var HandlerMap = map[string]common.HandlerServProc{
	model.ActionTypeInvoiceUpload: delivery.NewUploadHandler,

	// 未来扩展示例：
	// "order_status_sync": status.NewSyncHandler,
}
