package response

import (
	"autostore/shipsync/internal/domains/common/job"
	"autostore/shipsync/pkg/errorutil"
)

// ReconcileResult 运单登记任务结果（实现 ResultI 接口）
type ReconcileResult struct {
	JobID     string           `json:"job_id"`
	Status    string           `json:"status"`
	Matched   int              `json:"matched"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Error     *errorutil.Error `json:"error,omitempty"`
}

const (
	ReconcileStatusSuccess = "SUCCESS"
	ReconcileStatusFailed  = "FAILED"
)

// NewReconcileResult 创建任务结果
func NewReconcileResult() *ReconcileResult {
	return &ReconcileResult{}
}

// Set 实现 ResultI 接口
func (r *ReconcileResult) Set(meta *job.Meta, err error) {
	r.JobID = meta.RequestID
	if err != nil {
		r.Status = ReconcileStatusFailed
		r.Error = errorutil.Wrap(err)
	} else {
		r.Status = ReconcileStatusSuccess
	}
}

// GetStatus 实现 ResultI 接口
func (r *ReconcileResult) GetStatus() string {
	return r.Status
}
