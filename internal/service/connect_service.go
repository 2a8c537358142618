package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mirrormood/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrConnectionExists 在重复创建同一条家人连接时返回
	ErrConnectionExists = errors.New("connection already exists")
	// ErrConnectionNotFound 在指定连接不存在时返回
	ErrConnectionNotFound = errors.New("connection not found")
	// ErrSelfConnection 在用户尝试连接自己时返回
	ErrSelfConnection = errors.New("cannot connect to self")
)

// ConnectService 管理家人连接边
// 情绪共享只读这些边；增删在这里完成
type ConnectService struct {
	db *gorm.DB
}

// NewConnectService 构造 ConnectService
func NewConnectService(gdb *gorm.DB) *ConnectService {
	return &ConnectService{db: gdb}
}

// ConnectInput 定义创建家人连接的输入
type ConnectInput struct {
	UserID        uint
	ConnectUserID uint
	Alias         string
}

// Create 创建一条指向家人的连接边，别名为空时回退为对方昵称
func (s *ConnectService) Create(input ConnectInput) (*db.ConnectUser, error) {
	if input.UserID == input.ConnectUserID {
		return nil, ErrSelfConnection
	}

	var target db.User
	if err := s.db.First(&target, input.ConnectUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find connect target: %w", err)
	}

	var existing db.ConnectUser
	err := s.db.Where("user_id = ? AND connect_user_id = ?", input.UserID, input.ConnectUserID).
		First(&existing).Error
	if err == nil {
		return nil, ErrConnectionExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find connection: %w", err)
	}

	alias := strings.TrimSpace(input.Alias)
	if alias == "" {
		alias = target.Nickname
	}

	edge := db.ConnectUser{
		UserID:           input.UserID,
		ConnectUserID:    input.ConnectUserID,
		ConnectUserAlias: alias,
	}
	if err := s.db.Create(&edge).Error; err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	return &edge, nil
}

// List 返回用户的全部家人连接
func (s *ConnectService) List(userID uint) ([]db.ConnectUser, error) {
	var edges []db.ConnectUser
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return edges, nil
}

// Delete 删除用户名下的一条连接边。
// 物理删除：软删除的墓碑行会占住唯一索引，导致同一对用户无法重新连接。
func (s *ConnectService) Delete(userID, edgeID uint) error {
	result := s.db.Unscoped().Where("user_id = ?", userID).Delete(&db.ConnectUser{}, edgeID)
	if result.Error != nil {
		return fmt.Errorf("delete connection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrConnectionNotFound
	}
	return nil
}
