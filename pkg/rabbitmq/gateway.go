package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"autostore/shipsync/pkg/errorutil"
	"autostore/shipsync/pkg/model"
)

// 协作方处理器路由键
const (
	eventDeliveryExtraction = "deliveryExtraction"
	eventGetOrderList       = "newGetCoupangOrderList"
	eventUploadInvoices     = "uploadInvoices"
)

// Requester 请求/应答传输接口（Client 实现）
type Requester interface {
	Request(ctx context.Context, queueName string, event string, payload interface{}) ([]byte, error)
}

// Gateway 协作方网关：按约定结构解码应答，边界处快速失败
// 每次调用叠加独立的请求/应答超时（不放松任务级超时）
type Gateway struct {
	client       Requester
	onchQueue    string
	coupangQueue string
	rpcTimeout   time.Duration
}

// NewGateway 创建协作方网关
func NewGateway(client Requester, onchQueue, coupangQueue string, rpcTimeout time.Duration) *Gateway {
	return &Gateway{
		client:       client,
		onchQueue:    onchQueue,
		coupangQueue: coupangQueue,
		rpcTimeout:   rpcTimeout,
	}
}

// request 单次请求/应答调用
func (g *Gateway) request(ctx context.Context, queue, event string, payload interface{}) ([]byte, error) {
	if g.rpcTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.rpcTimeout)
		defer cancel()
	}
	return g.client.Request(ctx, queue, event, payload)
}

// FetchWaybills 拉取新登记运单
func (g *Gateway) FetchWaybills(ctx context.Context, req *model.FetchWaybillsRequest) ([]model.WaybillRecord, error) {
	body, err := g.request(ctx, g.onchQueue, eventDeliveryExtraction, req)
	if err != nil {
		return nil, errorutil.Wrap(err)
	}

	var resp model.FetchWaybillsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errorutil.DecodeFailed("decode waybill response failed", err.Error())
	}

	return resp.Data, nil
}

// FetchOrders 拉取市场待处理订单
func (g *Gateway) FetchOrders(ctx context.Context, req *model.FetchOrdersRequest) ([]model.PendingOrder, error) {
	body, err := g.request(ctx, g.coupangQueue, eventGetOrderList, req)
	if err != nil {
		return nil, errorutil.Wrap(err)
	}

	var resp model.FetchOrdersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errorutil.DecodeFailed("decode order response failed", err.Error())
	}

	return resp.Data, nil
}

// UploadInvoices 上传发货单批次，每条发货单返回一个结果
func (g *Gateway) UploadInvoices(ctx context.Context, req *model.UploadInvoicesRequest) ([]model.UploadOutcome, error) {
	body, err := g.request(ctx, g.coupangQueue, eventUploadInvoices, req)
	if err != nil {
		return nil, errorutil.Wrap(err)
	}

	var resp model.UploadInvoicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errorutil.DecodeFailed("decode upload response failed", err.Error())
	}

	return resp.Data, nil
}
