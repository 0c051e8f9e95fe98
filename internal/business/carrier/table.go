package carrier

// FallbackCode 未知承运商的回退编码（商家自行配送）
const FallbackCode = "DIRECT"

// 경동화물 是上游运单来源对 경동택배 的已知别名记法
// 一对一静态替换，不是通用同义词表
const (
	kyungdongFreightAlias = "경동화물"
	kyungdongParcel       = "경동택배"
)

// defaultCodes 内置映射：承运商显示名 → 市场侧编码
// 键为精确字符串，大小写与空格必须一致
var defaultCodes = map[string]string{
	"CJ대한통운": "CJGLS",
	"한진택배":   "HANJIN",
	"롯데택배":   "HYUNDAI",
	"우체국택배":  "EPOST",
	"로젠택배":   "KGB",
	"경동택배":   "KDEXP",
	"대신택배":   "DAESIN",
	"일양로지스":  "ILYANG",
	"천일택배":   "CHUNIL",
	"합동택배":   "HDEXP",
	"건영택배":   "KUNYOUNG",
}

// Table 承运商编码表（构建后只读）
type Table struct {
	codes map[string]string
}

// NewTable 创建内置编码表
func NewTable() *Table {
	return NewTableWithOverrides(nil)
}

// NewTableWithOverrides 创建编码表并合并覆盖映射（覆盖优先）
func NewTableWithOverrides(overrides map[string]string) *Table {
	codes := make(map[string]string, len(defaultCodes)+len(overrides))
	for name, code := range defaultCodes {
		codes[name] = code
	}
	for name, code := range overrides {
		codes[name] = code
	}

	return &Table{codes: codes}
}

// Lookup 解析承运商编码，未命中返回回退编码，永不报错
func (t *Table) Lookup(carrierName string) string {
	if code, ok := t.codes[carrierName]; ok {
		return code
	}
	return FallbackCode
}

// CanonicalName 别名改写：命中已知别名则返回规范名，否则原样返回
// 必须在编码解析之前调用
func CanonicalName(carrierName string) string {
	if carrierName == kyungdongFreightAlias {
		return kyungdongParcel
	}
	return carrierName
}
