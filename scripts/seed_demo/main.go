package main

import (
	"fmt"
	"log"
	"time"

	"github.com/mirrormood/internal/config"
	"github.com/mirrormood/internal/db"
	"github.com/mirrormood/internal/service"
)

// 演示数据生成器：一家三口、相互连接、最近一周的情绪记录
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("已存在用户，跳过演示数据生成")
		return
	}

	users := map[string]uint{}
	for _, name := range []string{"mira", "papa", "mama"} {
		if err := db.EnsureUser(name, "demo1234"); err != nil {
			log.Fatal("创建用户失败:", err)
		}
		var user db.User
		if err := db.DB.Where("username = ?", name).First(&user).Error; err != nil {
			log.Fatal("查询用户失败:", err)
		}
		users[name] = user.ID
	}

	connects := service.NewConnectService(db.DB)
	edges := []struct {
		from, to uint
		alias    string
	}{
		{users["mira"], users["papa"], "爸爸"},
		{users["mira"], users["mama"], "妈妈"},
		{users["papa"], users["mira"], "女儿"},
		{users["mama"], users["mira"], "女儿"},
	}
	for _, edge := range edges {
		if _, err := connects.Create(service.ConnectInput{
			UserID:        edge.from,
			ConnectUserID: edge.to,
			Alias:         edge.alias,
		}); err != nil {
			log.Fatal("创建家人连接失败:", err)
		}
	}

	emotions := service.NewEmotionService(db.DB)
	codes := []int{1, 2, 1, 3, 2, 4, 1}
	for name, userID := range users {
		for i, code := range codes {
			date := time.Now().AddDate(0, 0, -i).Format("20060102")
			if _, err := emotions.Record(service.EmotionInput{
				UserID:      userID,
				EmotionDate: date,
				EmotionCode: code,
				Intensities: []int{i % 3, 0, code, 0, 1},
			}); err != nil {
				log.Fatalf("为 %s 生成情绪记录失败: %v", name, err)
			}
		}
	}

	fmt.Println("演示数据生成完成！")
	fmt.Println("用户: mira / papa / mama (密码: demo1234)")
}
