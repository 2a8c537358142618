package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/mirrormood/internal/db"
	"gorm.io/gorm"
)

const (
	// emotionDateLayout 对应提交接口使用的 yyyyMMdd 日期串
	emotionDateLayout = "20060102"
	// dateLayout 为响应中的日期格式
	dateLayout = "2006-01-02"
)

var (
	// ErrInvalidEmotionDate 在提交的日期串不是合法 yyyyMMdd 时返回
	ErrInvalidEmotionDate = errors.New("invalid emotion date")
	// ErrUserNotFound 在连接边指向的用户档案不存在时返回
	ErrUserNotFound = errors.New("no such user")
)

// EmotionService 负责情绪记录的保存与本人/家人的查询
// 情绪记录一天一条，类别强度作为子记录挂在当天的主记录下
type EmotionService struct {
	db *gorm.DB
}

// NewEmotionService 构造 EmotionService
func NewEmotionService(gdb *gorm.DB) *EmotionService {
	return &EmotionService{db: gdb}
}

// EmotionInput 定义一次情绪提交
// Intensities 下标 i 对应类别 i+1，值为 0 表示未选择该类别
type EmotionInput struct {
	UserID      uint
	EmotionDate string
	EmotionCode int
	Intensities []int
}

// EmotionCountItem 表示单个类别的强度
type EmotionCountItem struct {
	EmotionCode int `json:"emotion_code"`
	Count       int `json:"count"`
}

// DailyEmotion 表示某一天的主情绪记录及其类别强度列表
type DailyEmotion struct {
	EmotionDate string             `json:"emotion_date"`
	Emotions    []EmotionCountItem `json:"emotions"`
}

// FamilyEmotion 表示一个家人连接近七天的情绪
type FamilyEmotion struct {
	ConnectUserAlias string         `json:"connect_user_alias"`
	Emotions         []DailyEmotion `json:"emotions"`
}

// Record 保存一天的情绪：先写主记录，再为每个强度非 0 的类别写子记录。
// 整个操作在一个事务中执行，任何一步失败都会整体回滚。
func (s *EmotionService) Record(input EmotionInput) (uint, error) {
	date, err := time.ParseInLocation(emotionDateLayout, input.EmotionDate, time.Local)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidEmotionDate, input.EmotionDate)
	}

	var emotionID uint
	err = s.db.Transaction(func(tx *gorm.DB) error {
		emotion := db.Emotion{
			UserID:      input.UserID,
			EmotionDate: date,
			EmotionCode: input.EmotionCode,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&emotion).Error; err != nil {
			return fmt.Errorf("create emotion: %w", err)
		}

		for i, value := range input.Intensities {
			if value == 0 {
				continue
			}
			count := db.EmotionCount{
				EmotionID:   emotion.ID,
				EmotionCode: i + 1,
				Count:       value,
			}
			if err := tx.Create(&count).Error; err != nil {
				return fmt.Errorf("create emotion count: %w", err)
			}
		}

		emotionID = emotion.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return emotionID, nil
}

// History 返回用户以 today 为截止的最近七天情绪，窗口两端均含。
// 没有记录的日期不补零；结果顺序即区间查询返回的顺序。
func (s *EmotionService) History(userID uint, today time.Time) ([]DailyEmotion, error) {
	end := normalizeToDate(today)
	start := end.AddDate(0, 0, -7)

	var emotions []db.Emotion
	if err := s.db.Where("user_id = ?", userID).
		Where("emotion_date BETWEEN ? AND ?", start, end).
		Find(&emotions).Error; err != nil {
		return nil, fmt.Errorf("list emotions: %w", err)
	}

	result := make([]DailyEmotion, 0, len(emotions))
	for _, emotion := range emotions {
		counts, err := s.countsOf(emotion.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, DailyEmotion{
			EmotionDate: emotion.EmotionDate.Format(dateLayout),
			Emotions:    counts,
		})
	}

	return result, nil
}

// FamilyHistory 对用户的每条家人连接执行一次 History。
// 没有任何记录的家人也会保留条目，只是情绪列表为空。
func (s *EmotionService) FamilyHistory(userID uint, today time.Time) ([]FamilyEmotion, error) {
	edges, err := s.edgesOf(userID)
	if err != nil {
		return nil, err
	}

	result := make([]FamilyEmotion, 0, len(edges))
	for _, edge := range edges {
		emotions, err := s.History(edge.ConnectUserID, today)
		if err != nil {
			return nil, err
		}
		result = append(result, FamilyEmotion{
			ConnectUserAlias: edge.ConnectUserAlias,
			Emotions:         emotions,
		})
	}

	return result, nil
}

// FamilyAngryList 返回昨天记录了愤怒情绪的家人档案。
// 任一连接指向的用户档案缺失时整个调用失败，不返回部分结果。
func (s *EmotionService) FamilyAngryList(userID uint, today time.Time) ([]db.User, error) {
	yesterday := normalizeToDate(today).AddDate(0, 0, -1)

	edges, err := s.edgesOf(userID)
	if err != nil {
		return nil, err
	}

	angry := make([]db.User, 0, len(edges))
	for _, edge := range edges {
		var user db.User
		if err := s.db.First(&user, edge.ConnectUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("find connect user: %w", err)
		}

		var emotion db.Emotion
		err := s.db.Where("user_id = ? AND emotion_date = ?", edge.ConnectUserID, yesterday).
			First(&emotion).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("find emotion: %w", err)
		}

		if isAngryCode(emotion.EmotionCode) {
			angry = append(angry, user)
		}
	}

	return angry, nil
}

func (s *EmotionService) countsOf(emotionID uint) ([]EmotionCountItem, error) {
	var counts []db.EmotionCount
	if err := s.db.Where("emotion_id = ?", emotionID).Find(&counts).Error; err != nil {
		return nil, fmt.Errorf("list emotion counts: %w", err)
	}

	items := make([]EmotionCountItem, 0, len(counts))
	for _, count := range counts {
		items = append(items, EmotionCountItem{
			EmotionCode: count.EmotionCode,
			Count:       count.Count,
		})
	}

	return items, nil
}

func (s *EmotionService) edgesOf(userID uint) ([]db.ConnectUser, error) {
	var edges []db.ConnectUser
	if err := s.db.Where("user_id = ?", userID).
		Order("id ASC").
		Find(&edges).Error; err != nil {
		return nil, fmt.Errorf("list connect users: %w", err)
	}
	return edges, nil
}

// isAngryCode 判定主情绪编码是否属于强烈负面（生气）
func isAngryCode(code int) bool {
	return code == 3 || code == 4
}

func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
