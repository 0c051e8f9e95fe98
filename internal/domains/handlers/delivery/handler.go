package delivery

import (
	"context"
	"encoding/json"
	"fmt"

	"autostore/shipsync/internal/business"
	"autostore/shipsync/internal/domains/common"
	"autostore/shipsync/internal/domains/common/job"
	"autostore/shipsync/internal/domains/common/response"
	"autostore/shipsync/internal/framework"
	"autostore/shipsync/pkg/model"
)

// UploadHandler 运单登记 Handler
// 一条触发消息对应一次完整任务
type UploadHandler struct {
	ctx      context.Context
	meta     *job.Meta
	trigger  *model.InvoiceUploadTrigger
	svc      *business.DeliveryService
	resulter *ReconcileResulter
	report   *business.RunReport
}

// NewUploadHandler 创建运单登记 Handler
// 解析触发消息的业务数据并校验
func NewUploadHandler(ctx context.Context, meta *job.Meta, payload interface{}, deps *common.Deps) (common.HandlerServ, error) {
	// 解析 payload（业务数据，可为空）
	var trigger model.InvoiceUploadTrigger
	if payload != nil {
		payloadBytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload failed: %w", err)
		}
		if err := json.Unmarshal(payloadBytes, &trigger); err != nil {
			return nil, fmt.Errorf("unmarshal trigger data failed: %w", err)
		}
	}

	if deps == nil || deps.Delivery == nil {
		return nil, fmt.Errorf("delivery service is required")
	}

	return &UploadHandler{
		ctx:      ctx,
		meta:     meta,
		trigger:  &trigger,
		svc:      deps.Delivery,
		resulter: NewReconcileResulter(),
	}, nil
}

// GetProcess 处理触发消息
func (h *UploadHandler) GetProcess() *response.Response {
	result := response.NewReconcileResult()

	err := h.process(result)

	resp := &response.Response{}
	resp.WrapResponse(result, h.meta, err)

	return resp
}

// process 业务处理链
func (h *UploadHandler) process(result *response.ReconcileResult) error {
	chain := framework.NewPreProcessor(
		h.preProcess,
		h.runJob,
	)
	if err := chain.Run(h.ctx); err != nil {
		return err
	}

	if err := h.resulter.Set(h.ctx, h.report); err != nil {
		return err
	}
	if out, ok := h.resulter.Get(h.ctx).(*ReconcileOutput); ok {
		result.Matched = out.Matched
		result.Succeeded = out.Succeeded
		result.Failed = out.Failed
	}

	return h.report.Err
}

// preProcess 触发参数校验
func (h *UploadHandler) preProcess(ctx context.Context) error {
	// 时间窗要么都给要么都不给
	if (h.trigger.DateFrom == "") != (h.trigger.DateTo == "") {
		return fmt.Errorf("date_from and date_to must be set together")
	}
	return nil
}

// runJob 执行一次任务
// 任务级错误在 Run 内收口（错误通知 + 结束标记），这里只取运行汇总
func (h *UploadHandler) runJob(ctx context.Context) error {
	h.report = h.svc.Run(ctx, h.meta.RequestID, h.trigger)
	return nil
}
