package business

import (
	"autostore/shipsync/internal/business/carrier"
	"autostore/shipsync/pkg/model"
)

// AssembleInvoice 组装单条发货单
// 先做承运商别名改写，再解析市场侧编码；纯函数，无失败分支
func AssembleInvoice(m model.MatchedOrder, table *carrier.Table) model.Invoice {
	courierName := carrier.CanonicalName(m.Waybill.CarrierName)

	return model.Invoice{
		OrderID:             m.Order.OrderID,
		ShipmentBoxID:       m.Order.ShipmentBoxID,
		RecipientName:       m.Order.RecipientName,
		RecipientPhone:      m.Order.RecipientPhone,
		CourierName:         courierName,
		DeliveryCompanyCode: table.Lookup(courierName),
		TrackingNumber:      m.Waybill.TrackingNumber,
	}
}

// AssembleInvoices 组装整个匹配批次，保持输入顺序
func AssembleInvoices(matched []model.MatchedOrder, table *carrier.Table) []model.Invoice {
	invoices := make([]model.Invoice, 0, len(matched))
	for _, m := range matched {
		invoices = append(invoices, AssembleInvoice(m, table))
	}
	return invoices
}

// PartitionOutcomes 按 status 把上传结果分为成功/失败两个分区
// 两个已知状态之外的结果不进入任何分区，只计数返回
func PartitionOutcomes(outcomes []model.UploadOutcome) (successes, failures []model.UploadOutcome, unknown int) {
	for _, outcome := range outcomes {
		switch outcome.Status {
		case model.OutcomeStatusSuccess:
			successes = append(successes, outcome)
		case model.OutcomeStatusFailed:
			failures = append(failures, outcome)
		default:
			unknown++
		}
	}
	return successes, failures, unknown
}
