package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/pkg/model"
)

func TestAssembleInvoice(t *testing.T) {
	table := carrier.NewTable()
	m := model.MatchedOrder{
		Order: model.PendingOrder{
			OrderID:        28000001001,
			ShipmentBoxID:  91000001001,
			RecipientName:  "김철수",
			RecipientPhone: "01011112222",
		},
		Waybill: model.WaybillRecord{
			RecipientName:  "김 철수",
			RecipientPhone: "010-1111-2222",
			CarrierName:    "한진택배",
			TrackingNumber: "HJ20260830001",
		},
	}

	inv := AssembleInvoice(m, table)

	assert.Equal(t, int64(28000001001), inv.OrderID)
	assert.Equal(t, int64(91000001001), inv.ShipmentBoxID)
	// 收件人字段取订单侧
	assert.Equal(t, "김철수", inv.RecipientName)
	assert.Equal(t, "01011112222", inv.RecipientPhone)
	assert.Equal(t, "한진택배", inv.CourierName)
	assert.Equal(t, "HANJIN", inv.DeliveryCompanyCode)
	assert.Equal(t, "HJ20260830001", inv.TrackingNumber)
}

// TestAssembleInvoice_AliasBeforeLookup 别名改写先于编码解析：경동화물 必须解析为 KDEXP 而非回退
func TestAssembleInvoice_AliasBeforeLookup(t *testing.T) {
	table := carrier.NewTable()
	m := model.MatchedOrder{
		Order:   model.PendingOrder{OrderID: 1},
		Waybill: model.WaybillRecord{CarrierName: "경동화물", TrackingNumber: "KD001"},
	}

	inv := AssembleInvoice(m, table)

	assert.Equal(t, "경동택배", inv.CourierName)
	assert.Equal(t, "KDEXP", inv.DeliveryCompanyCode)
}

func TestAssembleInvoice_UnknownCarrier(t *testing.T) {
	table := carrier.NewTable()
	m := model.MatchedOrder{
		Order:   model.PendingOrder{OrderID: 1},
		Waybill: model.WaybillRecord{CarrierName: "직접배송업체", TrackingNumber: "X001"},
	}

	inv := AssembleInvoice(m, table)

	assert.Equal(t, "직접배송업체", inv.CourierName)
	assert.Equal(t, carrier.FallbackCode, inv.DeliveryCompanyCode)
}

func TestAssembleInvoices_Order(t *testing.T) {
	table := carrier.NewTable()
	matched := []model.MatchedOrder{
		{Order: model.PendingOrder{OrderID: 3}, Waybill: model.WaybillRecord{TrackingNumber: "T3"}},
		{Order: model.PendingOrder{OrderID: 1}, Waybill: model.WaybillRecord{TrackingNumber: "T1"}},
	}

	invoices := AssembleInvoices(matched, table)

	require.Len(t, invoices, 2)
	assert.Equal(t, int64(3), invoices[0].OrderID)
	assert.Equal(t, int64(1), invoices[1].OrderID)
}

func TestPartitionOutcomes(t *testing.T) {
	outcomes := []model.UploadOutcome{
		{OrderID: 1, Status: model.OutcomeStatusSuccess},
		{OrderID: 2, Status: model.OutcomeStatusFailed, Message: "이미 출고된 주문입니다"},
		{OrderID: 3, Status: "pending"}, // 未知状态不进入任何分区
		{OrderID: 4, Status: model.OutcomeStatusSuccess},
	}

	successes, failures, unknown := PartitionOutcomes(outcomes)

	require.Len(t, successes, 2)
	assert.Equal(t, int64(1), successes[0].OrderID)
	assert.Equal(t, int64(4), successes[1].OrderID)
	require.Len(t, failures, 1)
	assert.Equal(t, int64(2), failures[0].OrderID)
	assert.Equal(t, 1, unknown)
}

func TestPartitionOutcomes_Empty(t *testing.T) {
	successes, failures, unknown := PartitionOutcomes(nil)

	assert.Empty(t, successes)
	assert.Empty(t, failures)
	assert.Zero(t, unknown)
}
