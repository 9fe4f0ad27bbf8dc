package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aniketsrinivasan/voice-todo/internal/api"
	"github.com/aniketsrinivasan/voice-todo/internal/config"
	"github.com/aniketsrinivasan/voice-todo/internal/llm"
	"github.com/aniketsrinivasan/voice-todo/internal/repository"
	"github.com/aniketsrinivasan/voice-todo/internal/service"
	"github.com/aniketsrinivasan/voice-todo/internal/voice"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	todoRepo := repository.NewTodoRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	transcriptRepo := repository.NewTranscriptRepository(db)

	todoSvc := service.NewTodoService(todoRepo, categoryRepo, transcriptRepo)
	agentSvc := service.NewAgentService(todoSvc, llm.NewEchoClient())
	voiceSvc := service.NewVoiceService(transcriptRepo, voice.NewWhisperStub())

	scheduler := service.NewSchedulerService(time.UTC)
	if cfg.TranscribeInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.TranscribeInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := voiceSvc.ProcessPending(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("transcribe sweep: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule transcribe sweep: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := api.New(cfg.HTTPAddr, todoSvc, agentSvc, voiceSvc, cfg.DefaultUserID)

	log.Println("Voice to-do backend started.")
	if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("server stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
