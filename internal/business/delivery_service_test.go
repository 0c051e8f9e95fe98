package business

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/model"
)

// stubGateway 脚本化协作方网关
type stubGateway struct {
	waybills    []model.WaybillRecord
	waybillsErr error
	orders      []model.PendingOrder
	ordersErr   error
	outcomes    []model.UploadOutcome
	uploadErr   error

	ordersCalled bool
	uploadCalled bool
	uploadReq    *model.UploadInvoicesRequest
	ordersReq    *model.FetchOrdersRequest
}

func (g *stubGateway) FetchWaybills(ctx context.Context, req *model.FetchWaybillsRequest) ([]model.WaybillRecord, error) {
	return g.waybills, g.waybillsErr
}

func (g *stubGateway) FetchOrders(ctx context.Context, req *model.FetchOrdersRequest) ([]model.PendingOrder, error) {
	g.ordersCalled = true
	g.ordersReq = req
	return g.orders, g.ordersErr
}

func (g *stubGateway) UploadInvoices(ctx context.Context, req *model.UploadInvoicesRequest) ([]model.UploadOutcome, error) {
	g.uploadCalled = true
	g.uploadReq = req
	return g.outcomes, g.uploadErr
}

// stubNotifier 记录通知调用
type stubNotifier struct {
	mu           sync.Mutex
	outcomeCalls []outcomeCall
	errorCalls   []errorCall
}

type outcomeCall struct {
	Status   string
	Outcomes []model.UploadOutcome
}

type errorCall struct {
	JobID   string
	Message string
}

func (n *stubNotifier) NotifyUploadOutcome(status string, outcomes []model.UploadOutcome) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outcomeCalls = append(n.outcomeCalls, outcomeCall{Status: status, Outcomes: outcomes})
}

func (n *stubNotifier) NotifyJobError(jobID string, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errorCalls = append(n.errorCalls, errorCall{JobID: jobID, Message: message})
}

// stubEvents 记录任务运行事件
type stubEvents struct {
	events []*model.JobRunEvent
	err    error
}

func (e *stubEvents) PublishJobRun(ctx context.Context, event *model.JobRunEvent) error {
	e.events = append(e.events, event)
	return e.err
}

func newTestService(gw *stubGateway, nf *stubNotifier, ev EventPublisher) *DeliveryService {
	return NewDeliveryService(
		Config{StoreID: "A01023920", VendorID: "A00012345"},
		gw, nf, ev,
		carrier.NewTable(),
		logger.NewNop(),
	)
}

// TestRun_HappyPath 单条匹配：别名改写承运商、整批上传、只发一份成功通知
func TestRun_HappyPath(t *testing.T) {
	gw := &stubGateway{
		waybills: []model.WaybillRecord{
			{RecipientName: "김철수", RecipientPhone: "010-1111-2222", CarrierName: "경동화물", TrackingNumber: "KD001"},
		},
		orders: []model.PendingOrder{
			{OrderID: 100, ShipmentBoxID: 900, RecipientName: "김철수", RecipientPhone: "01011112222"},
		},
		outcomes: []model.UploadOutcome{
			{OrderID: 100, ShipmentBoxID: 900, Status: model.OutcomeStatusSuccess},
		},
	}
	nf := &stubNotifier{}
	ev := &stubEvents{}

	report := newTestService(gw, nf, ev).Run(context.Background(), "job-1", nil)

	require.NoError(t, report.Err)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.Succeeded)
	assert.Zero(t, report.Failed)

	require.True(t, gw.uploadCalled)
	require.Len(t, gw.uploadReq.Invoices, 1)
	inv := gw.uploadReq.Invoices[0]
	assert.Equal(t, "경동택배", inv.CourierName)
	assert.Equal(t, "KDEXP", inv.DeliveryCompanyCode)
	assert.Equal(t, "KD001", inv.TrackingNumber)

	require.Len(t, nf.outcomeCalls, 1)
	assert.Equal(t, model.OutcomeStatusSuccess, nf.outcomeCalls[0].Status)
	assert.Empty(t, nf.errorCalls)

	require.Len(t, ev.events, 1)
	assert.Equal(t, model.JobRunStatusSuccess, ev.events[0].Status)
	assert.Equal(t, 1, ev.events[0].Succeeded)
}

// TestRun_NoWaybills 无新登记运单：不拉订单、不上传、不通知
func TestRun_NoWaybills(t *testing.T) {
	gw := &stubGateway{}
	nf := &stubNotifier{}

	report := newTestService(gw, nf, nil).Run(context.Background(), "job-2", nil)

	require.NoError(t, report.Err)
	assert.False(t, gw.ordersCalled)
	assert.False(t, gw.uploadCalled)
	assert.Empty(t, nf.outcomeCalls)
	assert.Empty(t, nf.errorCalls)
}

func TestRun_NoOrders(t *testing.T) {
	gw := &stubGateway{
		waybills: []model.WaybillRecord{{RecipientName: "김철수", RecipientPhone: "01011112222"}},
	}
	nf := &stubNotifier{}

	report := newTestService(gw, nf, nil).Run(context.Background(), "job-3", nil)

	require.NoError(t, report.Err)
	assert.True(t, gw.ordersCalled)
	assert.False(t, gw.uploadCalled)
	assert.Empty(t, nf.outcomeCalls)
}

// TestRun_NoMatches 有运单有订单但身份键无交集：不上传、不通知
func TestRun_NoMatches(t *testing.T) {
	gw := &stubGateway{
		waybills: []model.WaybillRecord{{RecipientName: "김철수", RecipientPhone: "01011112222"}},
		orders:   []model.PendingOrder{{OrderID: 1, RecipientName: "이영희", RecipientPhone: "01033334444"}},
	}
	nf := &stubNotifier{}

	report := newTestService(gw, nf, nil).Run(context.Background(), "job-4", nil)

	require.NoError(t, report.Err)
	assert.Zero(t, report.Matched)
	assert.False(t, gw.uploadCalled)
	assert.Empty(t, nf.outcomeCalls)
}

// TestRun_MixedOutcomes 成功/失败分区各发一份通知，未知状态只计数
func TestRun_MixedOutcomes(t *testing.T) {
	gw := &stubGateway{
		waybills: []model.WaybillRecord{
			{RecipientName: "김철수", RecipientPhone: "01011112222", CarrierName: "한진택배", TrackingNumber: "HJ1"},
			{RecipientName: "이영희", RecipientPhone: "01033334444", CarrierName: "한진택배", TrackingNumber: "HJ2"},
			{RecipientName: "박민수", RecipientPhone: "01055556666", CarrierName: "한진택배", TrackingNumber: "HJ3"},
		},
		orders: []model.PendingOrder{
			{OrderID: 1, RecipientName: "김철수", RecipientPhone: "01011112222"},
			{OrderID: 2, RecipientName: "이영희", RecipientPhone: "01033334444"},
			{OrderID: 3, RecipientName: "박민수", RecipientPhone: "01055556666"},
		},
		outcomes: []model.UploadOutcome{
			{OrderID: 1, Status: model.OutcomeStatusSuccess},
			{OrderID: 2, Status: model.OutcomeStatusFailed, Message: "이미 출고된 주문입니다"},
			{OrderID: 3, Status: "retrying"},
		},
	}
	nf := &stubNotifier{}

	report := newTestService(gw, nf, nil).Run(context.Background(), "job-5", nil)

	require.NoError(t, report.Err)
	assert.Equal(t, 3, report.Matched)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Unknown)

	require.Len(t, nf.outcomeCalls, 2)
	assert.Equal(t, model.OutcomeStatusSuccess, nf.outcomeCalls[0].Status)
	require.Len(t, nf.outcomeCalls[0].Outcomes, 1)
	assert.Equal(t, model.OutcomeStatusFailed, nf.outcomeCalls[1].Status)
	require.Len(t, nf.outcomeCalls[1].Outcomes, 1)
	assert.Equal(t, "이미 출고된 주문입니다", nf.outcomeCalls[1].Outcomes[0].Message)
}

// TestRun_UploadError 上传失败：恰好一次错误通知，运行事件标记 FAILED
func TestRun_UploadError(t *testing.T) {
	gw := &stubGateway{
		waybills:  []model.WaybillRecord{{RecipientName: "김철수", RecipientPhone: "01011112222"}},
		orders:    []model.PendingOrder{{OrderID: 1, RecipientName: "김철수", RecipientPhone: "01011112222"}},
		uploadErr: errors.New("coupang upstream timeout"),
	}
	nf := &stubNotifier{}
	ev := &stubEvents{}

	report := newTestService(gw, nf, ev).Run(context.Background(), "job-6", nil)

	require.Error(t, report.Err)
	require.Len(t, nf.errorCalls, 1)
	assert.Equal(t, "job-6", nf.errorCalls[0].JobID)
	assert.Equal(t, "coupang upstream timeout", nf.errorCalls[0].Message)
	assert.Empty(t, nf.outcomeCalls)

	require.Len(t, ev.events, 1)
	assert.Equal(t, model.JobRunStatusFailed, ev.events[0].Status)
	assert.Equal(t, "coupang upstream timeout", ev.events[0].Error)
}

func TestRun_FetchWaybillsError(t *testing.T) {
	gw := &stubGateway{waybillsErr: errors.New("onch unreachable")}
	nf := &stubNotifier{}

	report := newTestService(gw, nf, nil).Run(context.Background(), "job-7", nil)

	require.Error(t, report.Err)
	require.Len(t, nf.errorCalls, 1)
	assert.False(t, gw.ordersCalled)
}

// TestRun_TriggerFilter 触发参数透传到订单拉取；缺省状态为 INSTRUCT
func TestRun_TriggerFilter(t *testing.T) {
	gw := &stubGateway{
		waybills: []model.WaybillRecord{{RecipientName: "김철수", RecipientPhone: "01011112222"}},
	}

	newTestService(gw, &stubNotifier{}, nil).Run(context.Background(), "job-8", &model.InvoiceUploadTrigger{
		StatusFilter: model.OrderStatusDeparted,
		DateFrom:     "2026-08-01",
		DateTo:       "2026-08-30",
	})

	require.NotNil(t, gw.ordersReq)
	assert.Equal(t, model.OrderStatusDeparted, gw.ordersReq.StatusFilter)
	assert.Equal(t, "2026-08-01", gw.ordersReq.DateFrom)
	assert.Equal(t, "A00012345", gw.ordersReq.VendorID)

	newTestService(gw, &stubNotifier{}, nil).Run(context.Background(), "job-9", nil)
	assert.Equal(t, model.OrderStatusInstruct, gw.ordersReq.StatusFilter)
}

// TestRun_EventPublishFailureIgnored 旁路事件发布失败不影响任务结果
func TestRun_EventPublishFailureIgnored(t *testing.T) {
	gw := &stubGateway{}
	ev := &stubEvents{err: errors.New("redis down")}

	report := newTestService(gw, &stubNotifier{}, ev).Run(context.Background(), "job-10", nil)

	require.NoError(t, report.Err)
	require.Len(t, ev.events, 1)
}
