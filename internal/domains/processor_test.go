package domains

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/bitleak/lmstfy/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autostore/shipsync/internal/business"
	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/internal/domains/common"
	"autostore/shipsync/pkg/lmstfyx"
	"autostore/shipsync/pkg/logger"
	"autostore/shipsync/pkg/model"
)

// emptyGateway 所有拉取返回空（任务干净收尾）
type emptyGateway struct{}

func (emptyGateway) FetchWaybills(ctx context.Context, req *model.FetchWaybillsRequest) ([]model.WaybillRecord, error) {
	return nil, nil
}

func (emptyGateway) FetchOrders(ctx context.Context, req *model.FetchOrdersRequest) ([]model.PendingOrder, error) {
	return nil, nil
}

func (emptyGateway) UploadInvoices(ctx context.Context, req *model.UploadInvoicesRequest) ([]model.UploadOutcome, error) {
	return nil, nil
}

// noopNotifier 丢弃所有通知
type noopNotifier struct{}

func (noopNotifier) NotifyUploadOutcome(status string, outcomes []model.UploadOutcome) {}
func (noopNotifier) NotifyJobError(jobID string, message string)                       {}

func newTestDeps() *common.Deps {
	log := logger.NewNop()
	svc := business.NewDeliveryService(
		business.Config{StoreID: "A01023920"},
		emptyGateway{}, noopNotifier{}, nil,
		carrier.NewTable(), log,
	)
	return &common.Deps{Logger: log, Delivery: svc}
}

func triggerJob(t *testing.T, actionType string, data interface{}) *client.Job {
	t.Helper()
	envelope := map[string]interface{}{
		"payload": map[string]interface{}{
			"data": map[string]interface{}{
				"request_id":  "req-001",
				"action_type": actionType,
				"id":          "biz-001",
				"data":        data,
			},
		},
	}
	raw, err := json.Marshal(envelope)
	require.NoError(t, err)
	return &client.Job{ID: "msg-001", Queue: "shipsync-trigger", Data: raw}
}

// TestGetProcess_ValidTrigger 合法触发消息：路由到 Handler，任务结束后 ACK
func TestGetProcess_ValidTrigger(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), triggerJob(t, model.ActionTypeInvoiceUpload, nil))

	require.NotNil(t, resp)
	assert.Equal(t, lmstfyx.JobRespStatusSuccess, resp.Action)
	assert.NotEmpty(t, resp.Data)
}

func TestGetProcess_WithTriggerData(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), triggerJob(t, model.ActionTypeInvoiceUpload, map[string]interface{}{
		"status_filter": model.OrderStatusDeparted,
		"date_from":     "2026-08-01",
		"date_to":       "2026-08-30",
	}))

	assert.Equal(t, lmstfyx.JobRespStatusSuccess, resp.Action)
}

// TestGetProcess_MalformedJSON 解码失败：Bury，不进入业务层
func TestGetProcess_MalformedJSON(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), &client.Job{ID: "msg-bad", Data: []byte("{not-json")})

	assert.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)
}

func TestGetProcess_MissingPayload(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), &client.Job{ID: "msg-empty", Data: []byte(`{"payload":null}`)})

	assert.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)
}

// TestGetProcess_UnknownActionType 路由表未命中：Bury
func TestGetProcess_UnknownActionType(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), triggerJob(t, "order_status_sync", nil))

	assert.Equal(t, lmstfyx.JobRespStatusBury, resp.Action)
}

// TestGetProcess_InvalidTimeWindow 时间窗参数不成对：Handler 报错但消息仍 ACK
func TestGetProcess_InvalidTimeWindow(t *testing.T) {
	proc := GetProcess(logger.NewNop(), newTestDeps())

	resp := proc(context.Background(), triggerJob(t, model.ActionTypeInvoiceUpload, map[string]interface{}{
		"date_from": "2026-08-01",
	}))

	require.Equal(t, lmstfyx.JobRespStatusSuccess, resp.Action)

	var wrapped struct {
		Processed bool `json:"processed"`
		Result    struct {
			Status string `json:"status"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &wrapped))
	assert.False(t, wrapped.Processed)
	assert.Equal(t, "FAILED", wrapped.Result.Status)
}
