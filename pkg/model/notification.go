package model

// 邮件通知事件名（mail 服务约定）
const (
	MailEventUploadSuccess = "sendSuccessInvoiceUpload"
	MailEventUploadFailed  = "sendFailedInvoiceUpload"
	MailEventJobError      = "sendErrorMail"
)

// UploadReport 上传结果通知（成功/失败分区各发一份）
type UploadReport struct {
	Outcomes []UploadOutcome `json:"outcomes"`
	StoreID  string          `json:"store_id"`
}

// JobErrorReport 任务级错误通知
type JobErrorReport struct {
	JobType string `json:"job_type"`
	StoreID string `json:"store_id"`
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// 任务运行事件状态
const (
	JobRunStatusSuccess = "SUCCESS"
	JobRunStatusFailed  = "FAILED"
)

// JobRunEvent 任务运行事件（Redis 频道广播，尽力而为）
type JobRunEvent struct {
	JobID     string `json:"job_id"`
	JobType   string `json:"job_type"`
	Status    string `json:"status"` // SUCCESS/FAILED
	Matched   int    `json:"matched"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
