package db

import "time"

// Emotion 记录一个用户某一天的主情绪
// EmotionCode 为主情绪编码，EmotionDate 只取日期部分
// 本单元不更新、不删除情绪记录，提交后即不可变
type Emotion struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index:idx_emotions_user_date"`
	EmotionDate time.Time `gorm:"index:idx_emotions_user_date"`
	EmotionCode int
	CreatedAt   time.Time
}

// EmotionCount 记录一次情绪提交中某个类别的强度
// EmotionID + EmotionCode 为复合主键，类别编号从 1 开始
// 只有强度非 0 的类别才会落库
type EmotionCount struct {
	EmotionID   uint `gorm:"primaryKey;autoIncrement:false"`
	EmotionCode int  `gorm:"primaryKey;autoIncrement:false"`
	Count       int  `gorm:"column:emotion_count"`
}
