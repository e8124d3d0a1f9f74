package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"courtclub_backend/internals/configs"
	database "courtclub_backend/internals/databases"
	topupService "courtclub_backend/internals/features/payment/topups/service"
	helper "courtclub_backend/internals/helpers"
	"courtclub_backend/internals/middlewares"
	"courtclub_backend/internals/route"
)

func main() {
	// ===== ENV & konfigurasi =====
	configs.LoadEnv()

	// ===== Fiber app =====
	app := fiber.New(fiber.Config{
		AppName:      "CourtClub Backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	app.Use(requestid.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	// ===== Database =====
	database.ConnectDB()
	database.TunePool()
	database.MigrateIfRequested()
	database.WarmUpQueries()

	// ===== Payment gateway =====
	topupService.InitMidtrans()

	// ===== Routes =====
	route.BaseRoutes(app)
	route.SetupRoutes(app, database.DB)

	// ===== Start & graceful shutdown =====
	port := configs.GetEnv("PORT", "3000")

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("❌ Server gagal start: %v", err)
		}
	}()
	log.Printf("🚀 CourtClub Backend listen di port %s\n", port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("⚠️ Shutdown signal diterima, menutup server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("❌ Shutdown error: %v", err)
	}
	log.Println("✅ Server berhenti dengan rapi.")
}
