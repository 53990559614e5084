package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timesheet-hq/timesheet-backend-go/internal/config"
	appHTTP "github.com/timesheet-hq/timesheet-backend-go/internal/handler/http"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/cron"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/database"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/email"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/holiday"
	"github.com/timesheet-hq/timesheet-backend-go/internal/pkg/jwt"
	"github.com/timesheet-hq/timesheet-backend-go/internal/repository/postgresql"
	entryService "github.com/timesheet-hq/timesheet-backend-go/internal/service/entry"
	hraccessService "github.com/timesheet-hq/timesheet-backend-go/internal/service/hraccess"
	"github.com/timesheet-hq/timesheet-backend-go/internal/service/hrnotify"
	overtimeService "github.com/timesheet-hq/timesheet-backend-go/internal/service/overtime"
	ruleService "github.com/timesheet-hq/timesheet-backend-go/internal/service/rule"
	userconfigService "github.com/timesheet-hq/timesheet-backend-go/internal/service/userconfig"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	entryRepo := postgresql.NewEntryRepository(db)
	configRepo := postgresql.NewUserConfigRepository(db)
	settingRepo := postgresql.NewSettingRepository(db)
	ruleRepo := postgresql.NewRuleRepository(settingRepo)
	groupDir := postgresql.NewGroupDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	holidaySource := holiday.NewClient(cfg.Holiday.BaseURL)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	rules := ruleService.NewRuleService(ruleRepo, groupDir)
	access := hraccessService.NewAccessService(rules, groupDir)
	overtime := overtimeService.NewOvertimeService(entryRepo, configRepo, settingRepo, access, holidaySource)
	entries := entryService.NewEntryService(entryRepo, configRepo, settingRepo, rules, access, holidaySource)
	configs := userconfigService.NewUserConfigService(configRepo, access)
	evaluator := hrnotify.NewEvaluator(rules, access, overtime, entryRepo, configRepo, groupDir)

	scheduler := cron.NewScheduler()
	cron.NewHRNotificationJobs(evaluator, emailService, settingRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	entryHandler := appHTTP.NewEntryHandler(entries)
	overviewHandler := appHTTP.NewOverviewHandler(overtime, access)
	configHandler := appHTTP.NewConfigHandler(configs)
	settingsHandler := appHTTP.NewSettingsHandler(rules, access, settingRepo)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySource)

	router := appHTTP.NewRouter(
		JWTService,
		access,
		entryHandler,
		overviewHandler,
		configHandler,
		settingsHandler,
		holidayHandler,
		cfg.App.CORSOrigins,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Forced shutdown:", err)
	}
}
