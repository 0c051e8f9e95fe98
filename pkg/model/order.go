package model

// 市场订单状态（fetch-orders 的 status 过滤参数）
const (
	OrderStatusInstruct = "INSTRUCT"  // 等待发货指示
	OrderStatusDeparted = "DEPARTURE" // 已出库（按时间窗过滤）
)

// PendingOrder 市场侧待处理订单
// 订单号与箱号可能超出 int32 范围，统一使用 int64 解码
type PendingOrder struct {
	OrderID        int64  `json:"order_id"`
	ShipmentBoxID  int64  `json:"shipment_box_id"`
	VendorItemID   int64  `json:"vendor_item_id,omitempty"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`
	OrdererName    string `json:"orderer_name,omitempty"`
	Status         string `json:"status,omitempty"`
	OrderedAt      string `json:"ordered_at,omitempty"`
}

// MatchedOrder 匹配结果：订单 + 恰好一条运单记录
type MatchedOrder struct {
	Order   PendingOrder  `json:"order"`
	Waybill WaybillRecord `json:"waybill"`
}
