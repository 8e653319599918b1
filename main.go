package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"parkirku/database"
	"parkirku/handlers"
	"parkirku/routes"
	"parkirku/services"
	"parkirku/storage"
)

func main() {
	// 載入 .env 檔案
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	// 初始化資料庫
	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 建立儲存層並執行遷移與預設資料
	store := storage.NewStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to migrate store: %v", err)
	}
	if err := store.Seed(); err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}
	log.Println("Store migrated and seeded")

	// 建構服務（啟動時一次，依賴注入取代全域單例）
	registry := services.NewRegistry(store)
	billing := services.NewBilling(store)
	ledger := services.NewLedger(store)
	reports := services.NewReports(registry, ledger, store)
	monitor := services.NewMonitor(registry, reports)
	users := services.NewUsers(store)
	handler := handlers.New(registry, billing, ledger, reports, monitor, users)

	// 設置 Gin 模式
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "" {
		ginMode = gin.ReleaseMode
	}
	gin.SetMode(ginMode)
	log.Printf("Gin mode set to %s", ginMode)

	// 初始化 Gin 路由器
	r := gin.Default()

	api := r.Group("/api")
	{
		routes.Path(api, handler)
	}

	// 啟動定時任務：每分鐘唯讀巡檢（佔用率、超時車輛），只記 log 不改狀態
	c := cron.New()
	_, err = c.AddFunc("* * * * *", func() {
		warnings, err := monitor.Warnings()
		if err != nil {
			log.Printf("Failed to collect warnings: %v", err)
			return
		}
		for _, warning := range warnings {
			log.Printf("WARNING: %s", warning)
		}
	})
	if err != nil {
		log.Fatalf("Failed to schedule warning check cron job: %v", err)
	}
	c.Start()
	defer c.Stop() // Stop is safe to call more than once
	log.Println("Cron jobs started")

	// 啟動伺服器
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
