package mechanic

// Mechanic mechanics 表的 GORM 模型。
type Mechanic struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	FName      string `gorm:"column:fname;size:32;not null"`
	LName      string `gorm:"column:lname;size:32;not null"`
	Experience int    `gorm:"not null"` // 工龄（年），0-99
}

func (Mechanic) TableName() string { return "mechanics" }
