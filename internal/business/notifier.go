package business

import (
	"context"
	"sync"
	"time"

	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/model"
)

// MailPublisher 邮件队列发布接口（fire-and-forget）
type MailPublisher interface {
	Emit(ctx context.Context, queueName string, event string, payload interface{}) error
}

// dispatchTimeout 单次通知派发的超时
// 派发不挂在任务的 Context 上：任务取消不撤回已派发的通知
const dispatchTimeout = 10 * time.Second

// MailNotifier 结果通知器
// 所有派发在独立 goroutine 中完成，方法立即返回；
// 派发失败只记录在自身日志，不回流到任务主流程
type MailNotifier struct {
	publisher MailPublisher
	mailQueue string
	storeID   string
	logger    logger.Logger
	wg        sync.WaitGroup
}

// NewMailNotifier 创建结果通知器
func NewMailNotifier(publisher MailPublisher, mailQueue, storeID string, log logger.Logger) *MailNotifier {
	return &MailNotifier{
		publisher: publisher,
		mailQueue: mailQueue,
		storeID:   storeID,
		logger:    log,
	}
}

// NotifyUploadOutcome 派发一个分区的上传结果通知
// status 取 model.OutcomeStatusSuccess / model.OutcomeStatusFailed
func (n *MailNotifier) NotifyUploadOutcome(status string, outcomes []model.UploadOutcome) {
	event := model.MailEventUploadSuccess
	if status == model.OutcomeStatusFailed {
		event = model.MailEventUploadFailed
	}

	n.dispatch(event, &model.UploadReport{
		Outcomes: outcomes,
		StoreID:  n.storeID,
	})
}

// NotifyJobError 派发任务级错误通知
func (n *MailNotifier) NotifyJobError(jobID string, message string) {
	n.dispatch(model.MailEventJobError, &model.JobErrorReport{
		JobType: model.JobTypeShipping,
		StoreID: n.storeID,
		JobID:   jobID,
		Message: message,
	})
}

// dispatch 后台派发单条通知
func (n *MailNotifier) dispatch(event string, payload interface{}) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.logger.Errorf(context.Background(), "[Notifier] dispatch panic: event=%s, err=%v", event, r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := n.publisher.Emit(ctx, n.mailQueue, event, payload); err != nil {
			n.logger.Errorf(ctx, "[Notifier] dispatch failed: event=%s, err=%v", event, err)
			return
		}

		n.logger.Infof(ctx, "[Notifier] dispatched: event=%s", event)
	}()
}

// Wait 等待在途派发全部落地（仅供测试与 fasttest 使用）
func (n *MailNotifier) Wait() {
	n.wg.Wait()
}
