package business

import (
	"context"
	"time"

	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/model"
)

// CollaboratorGateway 协作方网关接口（请求/应答）
type CollaboratorGateway interface {
	FetchWaybills(ctx context.Context, req *model.FetchWaybillsRequest) ([]model.WaybillRecord, error)
	FetchOrders(ctx context.Context, req *model.FetchOrdersRequest) ([]model.PendingOrder, error)
	UploadInvoices(ctx context.Context, req *model.UploadInvoicesRequest) ([]model.UploadOutcome, error)
}

// Notifier 结果通知接口（派发即返回）
type Notifier interface {
	NotifyUploadOutcome(status string, outcomes []model.UploadOutcome)
	NotifyJobError(jobID string, message string)
}

// EventPublisher 任务运行事件发布接口（旁路，尽力而为）
type EventPublisher interface {
	PublishJobRun(ctx context.Context, event *model.JobRunEvent) error
}

// Config 任务配置（显式传入，不读进程级环境）
type Config struct {
	StoreID  string
	VendorID string
}

// RunReport 单次任务的运行汇总
type RunReport struct {
	Matched   int
	Succeeded int
	Failed    int
	Unknown   int // 两个已知状态之外的上传结果条数
	Err       error
}

// DeliveryService 运单登记服务
// 单次任务串行推进：拉运单 → 拉订单 → 匹配 → 组装 → 上传 → 通知，
// 任一拉取为空即干净收尾；1~5 步的错误中止任务并触发一次错误通知
type DeliveryService struct {
	cfg      Config
	gateway  CollaboratorGateway
	notifier Notifier
	events   EventPublisher // 可为 nil
	carriers *carrier.Table
	logger   logger.Logger
}

// NewDeliveryService 创建运单登记服务
func NewDeliveryService(
	cfg Config,
	gateway CollaboratorGateway,
	notifier Notifier,
	events EventPublisher,
	carriers *carrier.Table,
	log logger.Logger,
) *DeliveryService {
	return &DeliveryService{
		cfg:      cfg,
		gateway:  gateway,
		notifier: notifier,
		events:   events,
		carriers: carriers,
		logger:   log,
	}
}

// Run 执行一次完整任务
// 错误在此收口：记录日志、派发一次错误通知；结束标记始终打印
func (s *DeliveryService) Run(ctx context.Context, jobID string, trigger *model.InvoiceUploadTrigger) *RunReport {
	report := &RunReport{}

	nowTime := time.Now().Format("15:04:05")
	s.logger.Infof(ctx, "%s%s-%s: 운송장 등록 시작", model.JobTypeShipping, jobID, nowTime)
	defer s.logger.Infof(ctx, "%s%s: 운송장 등록 종료", model.JobTypeShipping, jobID)

	if err := s.reconcile(ctx, jobID, trigger, report); err != nil {
		report.Err = err
		s.logger.Errorf(ctx, "ERROR:%s%s: %v", model.JobTypeShipping, jobID, err)
		s.notifier.NotifyJobError(jobID, err.Error())
	}

	s.publishRunEvent(ctx, jobID, report)

	return report
}

// reconcile 任务主流程（四个提前退出点均为干净收尾，不产生任何通知）
func (s *DeliveryService) reconcile(ctx context.Context, jobID string, trigger *model.InvoiceUploadTrigger, report *RunReport) error {
	if trigger == nil {
		trigger = &model.InvoiceUploadTrigger{}
	}
	statusFilter := trigger.StatusFilter
	if statusFilter == "" {
		statusFilter = model.OrderStatusInstruct
	}

	// 1. 拉取新登记运单
	waybills, err := s.gateway.FetchWaybills(ctx, &model.FetchWaybillsRequest{
		JobID:   jobID,
		StoreID: s.cfg.StoreID,
		JobType: model.JobTypeShipping,
	})
	if err != nil {
		return err
	}
	if len(waybills) == 0 {
		s.logger.Infof(ctx, "%s%s: 새로 등록된 운송장이 없습니다.", model.JobTypeShipping, jobID)
		return nil
	}

	// 2. 拉取市场待处理订单
	orders, err := s.gateway.FetchOrders(ctx, &model.FetchOrdersRequest{
		JobID:        jobID,
		JobType:      model.JobTypeShipping,
		StatusFilter: statusFilter,
		VendorID:     s.cfg.VendorID,
		DateFrom:     trigger.DateFrom,
		DateTo:       trigger.DateTo,
	})
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		s.logger.Infof(ctx, "%s%s: 현재 주문이 없습니다.", model.JobTypeShipping, jobID)
		return nil
	}

	// 3. 匹配
	s.logger.Infof(ctx, "%s%s: 매치 시작", model.JobTypeShipping, jobID)
	matched := MatchOrders(waybills, orders)
	report.Matched = len(matched)
	if len(matched) == 0 {
		s.logger.Infof(ctx, "%s%s: 매치된 주문이 없습니다.", model.JobTypeShipping, jobID)
		return nil
	}

	// 4. 组装发货单
	invoices := AssembleInvoices(matched, s.carriers)

	// 5. 整批上传
	outcomes, err := s.gateway.UploadInvoices(ctx, &model.UploadInvoicesRequest{
		JobID:    jobID,
		JobType:  model.JobTypeShipping,
		Invoices: invoices,
	})
	if err != nil {
		return err
	}
	s.logger.Infof(ctx, "%s%s: 운송장 자동등록 결과 %d건", model.JobTypeShipping, jobID, len(outcomes))

	successes, failures, unknown := PartitionOutcomes(outcomes)
	report.Succeeded = len(successes)
	report.Failed = len(failures)
	report.Unknown = unknown
	if unknown > 0 {
		s.logger.Warnf(ctx, "%s%s: 상태를 알 수 없는 업로드 결과 %d건 제외", model.JobTypeShipping, jobID, unknown)
	}

	// 6. 分区通知（互相独立，派发即返回）
	if len(successes) > 0 {
		s.notifier.NotifyUploadOutcome(model.OutcomeStatusSuccess, successes)
		s.logger.Infof(ctx, "%s%s: 성공 이메일 전송 요청 완료", model.JobTypeShipping, jobID)
	}
	if len(failures) > 0 {
		s.notifier.NotifyUploadOutcome(model.OutcomeStatusFailed, failures)
		s.logger.Infof(ctx, "%s%s: 실패 이메일 전송 요청 완료", model.JobTypeShipping, jobID)
	}

	return nil
}

// publishRunEvent 发布任务运行事件（旁路，失败只记日志）
func (s *DeliveryService) publishRunEvent(ctx context.Context, jobID string, report *RunReport) {
	if s.events == nil {
		return
	}

	event := &model.JobRunEvent{
		JobID:     jobID,
		JobType:   model.JobTypeShipping,
		Status:    model.JobRunStatusSuccess,
		Matched:   report.Matched,
		Succeeded: report.Succeeded,
		Failed:    report.Failed,
		Timestamp: time.Now().Unix(),
	}
	if report.Err != nil {
		event.Status = model.JobRunStatusFailed
		event.Error = report.Err.Error()
	}

	if err := s.events.PublishJobRun(ctx, event); err != nil {
		s.logger.Warnf(ctx, "%s%s: publish run event failed: %v", model.JobTypeShipping, jobID, err)
	}
}
