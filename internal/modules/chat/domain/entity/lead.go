package entity

import (
	"time"
)

// Lead 访客留资表，一个会话最多一条记录，后到的信息做补全
type Lead struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement;comment:自增id" json:"id"`
	SessionId int64     `gorm:"column:session_id;index;not null;comment:会话id" json:"session_id"`
	Email     string    `gorm:"column:email;type:varchar(255);comment:邮箱" json:"email,omitempty"`
	Name      string    `gorm:"column:name;type:varchar(255);comment:姓名" json:"name,omitempty"`
	Phone     string    `gorm:"column:phone;type:varchar(50);comment:电话" json:"phone,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;not null;comment:创建时间" json:"created_at"`
}

func (Lead) TableName() string {
	return "leads"
}
