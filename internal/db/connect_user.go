package db

import "gorm.io/gorm"

// ConnectUser 定义家人关系边
// UserID 指向 ConnectUserID 的有向连接，别名用于对端展示
// UserID + ConnectUserID 采用唯一索引，同一对用户只允许一条边
type ConnectUser struct {
	gorm.Model
	UserID           uint `gorm:"index;index:idx_connect_user_edge,unique"`
	ConnectUserID    uint `gorm:"index:idx_connect_user_edge,unique"`
	ConnectUserAlias string
}
