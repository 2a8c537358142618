package service

import (
	"errors"
	"testing"
	"time"

	"github.com/mirrormood/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupEmotionTestDB(t *testing.T) func() {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.User{}, &db.Emotion{}, &db.EmotionCount{}, &db.ConnectUser{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func seedUser(t *testing.T, username string) *db.User {
	t.Helper()
	user := db.User{Username: username, Password: "hashed", Nickname: username}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return &user
}

func seedEdge(t *testing.T, userID, targetID uint, alias string) {
	t.Helper()
	edge := db.ConnectUser{UserID: userID, ConnectUserID: targetID, ConnectUserAlias: alias}
	if err := db.DB.Create(&edge).Error; err != nil {
		t.Fatalf("failed to seed edge: %v", err)
	}
}

func TestRecordEmotionCreatesCounts(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	user := seedUser(t, "mira")

	emotionID, err := svc.Record(EmotionInput{
		UserID:      user.ID,
		EmotionDate: "20240501",
		EmotionCode: 2,
		Intensities: []int{2, 0, 1, 0, 3},
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if emotionID == 0 {
		t.Fatal("expected generated emotion id")
	}

	var emotion db.Emotion
	if err := db.DB.First(&emotion, emotionID).Error; err != nil {
		t.Fatalf("failed to load emotion: %v", err)
	}
	if emotion.EmotionCode != 2 {
		t.Fatalf("unexpected emotion code: %d", emotion.EmotionCode)
	}
	if got := emotion.EmotionDate.Format("2006-01-02"); got != "2024-05-01" {
		t.Fatalf("unexpected emotion date: %s", got)
	}

	var counts []db.EmotionCount
	if err := db.DB.Where("emotion_id = ?", emotionID).Order("emotion_code ASC").Find(&counts).Error; err != nil {
		t.Fatalf("failed to load counts: %v", err)
	}

	// 0 值类别不落库，类别编号为 1 基下标
	if len(counts) != 3 {
		t.Fatalf("expected 3 count rows, got %d", len(counts))
	}
	expected := map[int]int{1: 2, 3: 1, 5: 3}
	for _, count := range counts {
		if expected[count.EmotionCode] != count.Count {
			t.Fatalf("unexpected count for code %d: %d", count.EmotionCode, count.Count)
		}
	}
}

func TestRecordEmotionInvalidDate(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	user := seedUser(t, "mira")

	_, err := svc.Record(EmotionInput{
		UserID:      user.ID,
		EmotionDate: "2024-01-01",
		EmotionCode: 1,
		Intensities: []int{1},
	})
	if !errors.Is(err, ErrInvalidEmotionDate) {
		t.Fatalf("expected ErrInvalidEmotionDate, got %v", err)
	}

	var total int64
	db.DB.Model(&db.Emotion{}).Count(&total)
	if total != 0 {
		t.Fatalf("expected no emotion rows, got %d", total)
	}
}

func TestRecordEmotionRollsBackOnCountFailure(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	user := seedUser(t, "mira")

	first, err := svc.Record(EmotionInput{
		UserID:      user.ID,
		EmotionDate: "20240501",
		EmotionCode: 1,
		Intensities: []int{1},
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	// 预埋与下一条主记录冲突的子记录，使事务内的第二次写入失败
	conflict := db.EmotionCount{EmotionID: first + 1, EmotionCode: 1, Count: 9}
	if err := db.DB.Create(&conflict).Error; err != nil {
		t.Fatalf("failed to seed conflicting count: %v", err)
	}

	other := seedUser(t, "juno")
	if _, err := svc.Record(EmotionInput{
		UserID:      other.ID,
		EmotionDate: "20240502",
		EmotionCode: 2,
		Intensities: []int{5},
	}); err == nil {
		t.Fatal("expected error from conflicting count write")
	}

	var total int64
	db.DB.Model(&db.Emotion{}).Where("user_id = ?", other.ID).Count(&total)
	if total != 0 {
		t.Fatalf("expected rollback to remove emotion row, got %d", total)
	}
}

func TestHistoryWindow(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	user := seedUser(t, "mira")

	for _, date := range []string{"20240510", "20240503", "20240502"} {
		if _, err := svc.Record(EmotionInput{
			UserID:      user.ID,
			EmotionDate: date,
			EmotionCode: 1,
			Intensities: []int{1},
		}); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	today := time.Date(2024, 5, 10, 15, 30, 0, 0, time.Local)
	emotions, err := svc.History(user.ID, today)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}

	// 窗口为 [today-7, today]，today-8 的记录被排除
	if len(emotions) != 2 {
		t.Fatalf("expected 2 entries in window, got %d", len(emotions))
	}
	for _, entry := range emotions {
		if entry.EmotionDate == "2024-05-02" {
			t.Fatal("expected 2024-05-02 to fall outside the window")
		}
		if len(entry.Emotions) != 1 {
			t.Fatalf("expected 1 count item, got %d", len(entry.Emotions))
		}
	}
}

func TestFamilyHistoryKeepsEmptyConnections(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	owner := seedUser(t, "mira")
	active := seedUser(t, "juno")
	silent := seedUser(t, "hana")

	seedEdge(t, owner.ID, active.ID, "妈妈")
	seedEdge(t, owner.ID, silent.ID, "弟弟")

	if _, err := svc.Record(EmotionInput{
		UserID:      active.ID,
		EmotionDate: "20240509",
		EmotionCode: 2,
		Intensities: []int{0, 4},
	}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local)
	family, err := svc.FamilyHistory(owner.ID, today)
	if err != nil {
		t.Fatalf("FamilyHistory returned error: %v", err)
	}

	if len(family) != 2 {
		t.Fatalf("expected one entry per connection, got %d", len(family))
	}

	if family[0].ConnectUserAlias != "妈妈" {
		t.Fatalf("unexpected first alias: %s", family[0].ConnectUserAlias)
	}
	if len(family[0].Emotions) != 1 {
		t.Fatalf("expected 1 daily entry for active connection, got %d", len(family[0].Emotions))
	}

	// 没有记录的家人保留条目，情绪列表为空
	if family[1].ConnectUserAlias != "弟弟" {
		t.Fatalf("unexpected second alias: %s", family[1].ConnectUserAlias)
	}
	if len(family[1].Emotions) != 0 {
		t.Fatalf("expected empty emotions for silent connection, got %d", len(family[1].Emotions))
	}
}

func TestFamilyAngryListFiltersByCode(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	owner := seedUser(t, "mira")
	angry := seedUser(t, "juno")
	calm := seedUser(t, "hana")
	quiet := seedUser(t, "ren")

	seedEdge(t, owner.ID, angry.ID, "爸爸")
	seedEdge(t, owner.ID, calm.ID, "妈妈")
	seedEdge(t, owner.ID, quiet.ID, "妹妹")

	if _, err := svc.Record(EmotionInput{UserID: angry.ID, EmotionDate: "20240509", EmotionCode: 3}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if _, err := svc.Record(EmotionInput{UserID: calm.ID, EmotionDate: "20240509", EmotionCode: 2}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	users, err := svc.FamilyAngryList(owner.ID, today)
	if err != nil {
		t.Fatalf("FamilyAngryList returned error: %v", err)
	}

	if len(users) != 1 {
		t.Fatalf("expected 1 angry user, got %d", len(users))
	}
	if users[0].ID != angry.ID {
		t.Fatalf("unexpected user in angry list: %d", users[0].ID)
	}
}

func TestFamilyAngryListMissingUserAborts(t *testing.T) {
	cleanup := setupEmotionTestDB(t)
	defer cleanup()

	svc := NewEmotionService(db.DB)
	owner := seedUser(t, "mira")
	angry := seedUser(t, "juno")

	seedEdge(t, owner.ID, angry.ID, "爸爸")
	// 指向不存在用户的悬空连接
	seedEdge(t, owner.ID, angry.ID+100, "幽灵")

	if _, err := svc.Record(EmotionInput{UserID: angry.ID, EmotionDate: "20240509", EmotionCode: 4}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	today := time.Date(2024, 5, 10, 8, 0, 0, 0, time.Local)
	users, err := svc.FamilyAngryList(owner.ID, today)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if users != nil {
		t.Fatal("expected no partial result when a connection's user is missing")
	}
}
