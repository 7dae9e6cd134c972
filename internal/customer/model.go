package customer

// Customer customers 表的 GORM 模型。
// id 由存储层自增序列生成，Create 成功后由驱动直接带回，
// 不做 currval 式的序列回读。
type Customer struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	FName   string `gorm:"column:fname;size:32;not null"`
	LName   string `gorm:"column:lname;size:32;not null;index"`
	Phone   string `gorm:"size:13;not null"`
	Address string `gorm:"size:256;not null"`
}

func (Customer) TableName() string { return "customers" }
