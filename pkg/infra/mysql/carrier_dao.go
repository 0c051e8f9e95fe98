package mysql

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// CarrierCode 承运商编码覆盖行
// 运营侧可在不发版的情况下增改映射，启动时整表加载
type CarrierCode struct {
	CarrierName         string `gorm:"column:carrier_name;primaryKey"`
	DeliveryCompanyCode string `gorm:"column:delivery_company_code"`
}

// TableName 指定表名
func (CarrierCode) TableName() string {
	return "carrier_codes"
}

// CarrierDAO 承运商编码数据访问对象
type CarrierDAO struct {
	db *gorm.DB
}

// NewCarrierDAO 创建 CarrierDAO 实例
func NewCarrierDAO(dsn string) (*CarrierDAO, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &CarrierDAO{
		db: db,
	}, nil
}

// LoadAll 加载全部覆盖映射
func (dao *CarrierDAO) LoadAll(ctx context.Context) (map[string]string, error) {
	var rows []CarrierCode
	result := dao.db.WithContext(ctx).Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load carrier codes: %w", result.Error)
	}

	codes := make(map[string]string, len(rows))
	for _, row := range rows {
		codes[row.CarrierName] = row.DeliveryCompanyCode
	}

	return codes, nil
}

// Close 关闭数据库连接
func (dao *CarrierDAO) Close() error {
	sqlDB, err := dao.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
