package car

// Car cars 表的 GORM 模型。VIN 是业务主键（非存储层生成），固定 16 位。
type Car struct {
	VIN   string `gorm:"column:vin;primaryKey;size:16"`
	Make  string `gorm:"size:32;not null"`
	Model string `gorm:"size:32;not null"`
	Year  int    `gorm:"not null"`
}

func (Car) TableName() string { return "cars" }

// Ownership owns 表：客户与车辆的多对多归属关系。
// 只建立、不删除；某辆车只有建立了归属才可以报修。
type Ownership struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	CustomerID uint   `gorm:"index;not null"`
	CarVIN     string `gorm:"column:car_vin;size:16;index;not null"`
}

func (Ownership) TableName() string { return "owns" }
