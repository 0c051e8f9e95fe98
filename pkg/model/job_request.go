package model

// JobTypeShipping 发货单上传任务的类型标记（日志与通知前缀）
const JobTypeShipping = "SHIPPING"

// ActionTypeInvoiceUpload 触发消息的 action_type（路由键）
const ActionTypeInvoiceUpload = "invoice_upload"

// InvoiceUploadTrigger 触发消息的业务数据
// 由外部调度方投递到触发队列；订单状态过滤条件由调用方给定
type InvoiceUploadTrigger struct {
	StatusFilter string `json:"status_filter"`       // 订单状态过滤（缺省 INSTRUCT）
	VendorID     string `json:"vendor_id,omitempty"` // 可选：按卖家过滤
	DateFrom     string `json:"date_from,omitempty"` // 可选：时间窗起点（yyyy-MM-dd）
	DateTo       string `json:"date_to,omitempty"`   // 可选：时间窗终点
}

// FetchWaybillsRequest 拉取新登记运单（onch 服务 deliveryExtraction）
type FetchWaybillsRequest struct {
	JobID   string `json:"job_id"`
	StoreID string `json:"store_id"`
	JobType string `json:"job_type"`
}

// FetchWaybillsResponse 运单拉取响应
type FetchWaybillsResponse struct {
	Status string          `json:"status"`
	Data   []WaybillRecord `json:"data"`
}

// FetchOrdersRequest 拉取市场待处理订单（coupang 服务 newGetCoupangOrderList）
type FetchOrdersRequest struct {
	JobID        string `json:"job_id"`
	JobType      string `json:"job_type"`
	StatusFilter string `json:"status_filter"`
	VendorID     string `json:"vendor_id,omitempty"`
	DateFrom     string `json:"date_from,omitempty"`
	DateTo       string `json:"date_to,omitempty"`
}

// FetchOrdersResponse 订单拉取响应
type FetchOrdersResponse struct {
	Status string         `json:"status"`
	Data   []PendingOrder `json:"data"`
}

// UploadInvoicesRequest 上传发货单批次（coupang 服务 uploadInvoices）
type UploadInvoicesRequest struct {
	JobID    string    `json:"job_id"`
	JobType  string    `json:"job_type"`
	Invoices []Invoice `json:"invoices"`
}

// UploadInvoicesResponse 上传结果响应，每条发货单一个结果
type UploadInvoicesResponse struct {
	Status string          `json:"status"`
	Data   []UploadOutcome `json:"data"`
}
