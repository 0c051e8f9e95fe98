package model

// WaybillRecord 运单记录（来自订单管理方 onch 服务）
// 一次任务内不可变，按收件人身份键与市场订单匹配
type WaybillRecord struct {
	RecipientName  string `json:"recipient_name"`  // 收件人姓名
	RecipientPhone string `json:"recipient_phone"` // 收件人手机号（可能带分隔符）
	CarrierName    string `json:"carrier_name"`    // 承运商名称（自由文本）
	TrackingNumber string `json:"tracking_number"` // 运单号
}
