package business

import (
	"strings"
	"unicode"

	"autostore/shipsync/pkg/model"
)

// IdentityKey 收件人身份键：规范化姓名 + "-" + 规范化手机号
// 两侧来源的格式漂移（姓名空白、手机号分隔符）不影响匹配
func IdentityKey(name, phone string) string {
	return normalizeName(name) + "-" + normalizePhone(phone)
}

// normalizeName 去除全部空白字符
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizePhone 只保留数字
func normalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MatchOrders 按身份键把运单并到订单上
// 一次遍历建运单索引（同键多条保留迭代序最后一条），再逐订单探测；
// 无匹配运单的订单静默丢弃，输出保持订单输入顺序
func MatchOrders(waybills []model.WaybillRecord, orders []model.PendingOrder) []model.MatchedOrder {
	index := make(map[string]model.WaybillRecord, len(waybills))
	for _, wb := range waybills {
		index[IdentityKey(wb.RecipientName, wb.RecipientPhone)] = wb
	}

	matched := make([]model.MatchedOrder, 0, len(orders))
	for _, order := range orders {
		wb, ok := index[IdentityKey(order.RecipientName, order.RecipientPhone)]
		if !ok {
			continue
		}
		matched = append(matched, model.MatchedOrder{
			Order:   order,
			Waybill: wb,
		})
	}

	return matched
}
