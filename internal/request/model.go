package request

import "time"

// ServiceRequest service_requests 表的 GORM 模型。
// RID 由存储层自增序列生成，创建成功后直接带回。
type ServiceRequest struct {
	RID        uint      `gorm:"column:rid;primaryKey;autoIncrement"`
	CustomerID uint      `gorm:"index;not null"`
	CarVIN     string    `gorm:"column:car_vin;size:16;index;not null"`
	Date       time.Time `gorm:"not null"` // 开单时间
	Odometer   int       `gorm:"not null"`
	Complaint  string    `gorm:"size:512;not null"`
}

func (ServiceRequest) TableName() string { return "service_requests" }

// ClosedRequest closed_requests 表：ServiceRequest 的 1:1 关单扩展行。
// rid 既是主键又指向 service_requests.rid —— 同一张工单最多关一次，
// 重复关单由主键冲突直接挡掉，不做先查后插。
type ClosedRequest struct {
	RID     uint      `gorm:"column:rid;primaryKey"`
	MID     uint      `gorm:"column:mid;not null"` // 经手技师
	Date    time.Time `gorm:"not null"`            // 关单时间
	Comment string    `gorm:"size:512"`
	Bill    int       `gorm:"not null"`
}

func (ClosedRequest) TableName() string { return "closed_requests" }
