package model

// Invoice 可上传的发货单：匹配订单 + 规范化承运商信息
type Invoice struct {
	OrderID             int64  `json:"order_id"`
	ShipmentBoxID       int64  `json:"shipment_box_id"`
	RecipientName       string `json:"recipient_name"`
	RecipientPhone      string `json:"recipient_phone"`
	CourierName         string `json:"courier_name"`          // 别名改写后的承运商名称
	DeliveryCompanyCode string `json:"delivery_company_code"` // 市场侧承运商编码
	TrackingNumber      string `json:"tracking_number"`
}

// 上传结果状态
const (
	OutcomeStatusSuccess = "success"
	OutcomeStatusFailed  = "failed"
)

// UploadOutcome 单条发货单的上传结果
// 以 status 字段标识结果，不依赖批次内的数组位置
type UploadOutcome struct {
	OrderID       int64  `json:"order_id"`
	ShipmentBoxID int64  `json:"shipment_box_id"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
}
