package report

import "time"

// 各报表的行类型。列名与 SQL 别名对齐，gorm Scan 按 column 标签填充。

// CustomerBillRow “最近一次关单账单”行。
type CustomerBillRow struct {
	CustomerID uint      `gorm:"column:customer_id" json:"customer_id"`
	FName      string    `gorm:"column:fname" json:"fname"`
	LName      string    `gorm:"column:lname" json:"lname"`
	Bill       int       `gorm:"column:bill" json:"bill"`
	ClosedAt   time.Time `gorm:"column:closed_at" json:"closed_at"`
}

// CustomerCarsRow 名下车辆数量行。
type CustomerCarsRow struct {
	CustomerID uint   `gorm:"column:customer_id" json:"customer_id"`
	FName      string `gorm:"column:fname" json:"fname"`
	LName      string `gorm:"column:lname" json:"lname"`
	Cars       int    `gorm:"column:cars" json:"cars"`
}

// CarRow 车辆行。
type CarRow struct {
	VIN   string `gorm:"column:vin" json:"vin"`
	Make  string `gorm:"column:make" json:"make"`
	Model string `gorm:"column:model" json:"model"`
	Year  int    `gorm:"column:year" json:"year"`
}

// CarServicesRow 车辆 + 工单数行。
type CarServicesRow struct {
	VIN      string `gorm:"column:vin" json:"vin"`
	Make     string `gorm:"column:make" json:"make"`
	Model    string `gorm:"column:model" json:"model"`
	Year     int    `gorm:"column:year" json:"year"`
	Services int    `gorm:"column:services" json:"services"`
}

// CustomerTotalRow 客户累计账单行。
type CustomerTotalRow struct {
	CustomerID uint   `gorm:"column:customer_id" json:"customer_id"`
	FName      string `gorm:"column:fname" json:"fname"`
	LName      string `gorm:"column:lname" json:"lname"`
	Total      int64  `gorm:"column:total" json:"total"`
}
