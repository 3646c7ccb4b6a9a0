package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"github.com/vega9999/HydroHero/internal/app/reminder"
	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/app/usecase"
	"github.com/vega9999/HydroHero/internal/config"
	"github.com/vega9999/HydroHero/internal/infra/sqlite"
	"github.com/vega9999/HydroHero/internal/infra/wa"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	loc, _ := cfg.Location()

	// 2. Logger
	logger := walog.Stdout("Client", cfg.LogLevel, true)

	// 3. Database & Repositories
	// WAL and busy_timeout avoid "database is locked" next to whatsmeow's own connection.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.SQLitePath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	intakes := sqlite.NewIntakeRepository(db)
	prefs := sqlite.NewPreferenceRepository(db)
	accounts := sqlite.NewAccountRepository(db)
	for name, initTable := range map[string]func(context.Context) error{
		"water_intakes": intakes.InitTable,
		"preferences":   prefs.InitTable,
		"accounts":      accounts.InitTable,
	} {
		if err := initTable(ctx); err != nil {
			log.Fatalf("Failed to init table %s: %v", name, err)
		}
	}

	// 4. Derived state
	tr := tracker.New(intakes, prefs, tracker.Config{
		Location:         loc,
		DefaultDailyGoal: cfg.DefaultDailyGoal,
		ClampProgress:    cfg.ClampProgress,
	}, logger.Sub("Tracker"))
	tr.Start()
	defer tr.Close()

	// 5. Use Cases
	text := usecase.NewFormatter(language.Make(cfg.Language))
	handleMessageUC := usecase.NewHandleMessageUsecase(usecase.MessageHandlers{
		AddWater:     usecase.NewAddWaterUsecase(intakes, prefs, tr, text),
		SetGoal:      usecase.NewSetDailyGoalUsecase(prefs, tr, text),
		Profile:      usecase.NewUpdateProfileUsecase(prefs, tr, nil, text),
		Status:       usecase.NewGetStatusUsecase(tr, text),
		History:      usecase.NewGetHistoryUsecase(intakes, tr, text),
		Achievements: usecase.NewGetAchievementsUsecase(tr),
		Social:       usecase.NewSocialUsecase(tr, text),
		Reminder:     usecase.NewSetReminderUsecase(prefs),
		Auth:         usecase.NewAuthUsecase(accounts, prefs, logger.Sub("Auth")),
	})

	// 6. WhatsApp Service
	waService := wa.NewService(cfg.SQLitePath, logger)

	// 7. Register Message Handler
	waService.SetMessageHandler(func(ctx context.Context, client *whatsmeow.Client, evt *events.Message) {
		if cfg.GroupID != "" && evt.Info.Chat.String() != cfg.GroupID {
			return
		}
		if evt.Info.IsFromMe {
			return
		}

		// Phone number when known, so a user keeps one history across LID and PN senders.
		userID := waService.ResolveUserID(ctx, evt.Info.Sender)

		pushName := evt.Info.PushName
		if pushName == "" {
			pushName = "Unknown"
		}

		msg := ""
		if evt.Message.Conversation != nil {
			msg = *evt.Message.Conversation
		} else if evt.Message.ExtendedTextMessage != nil && evt.Message.ExtendedTextMessage.Text != nil {
			msg = *evt.Message.ExtendedTextMessage.Text
		}
		if msg == "" {
			return
		}

		response, err := handleMessageUC.Execute(ctx, userID, pushName, msg)
		if err != nil {
			log.Printf("Error handling message from %s: %v", userID, err)
			return
		}
		if response == "" {
			return
		}
		log.Printf("Command from %s (%s): %s", pushName, userID, msg)

		// Apply reply delay to appear more human-like
		delayMs := cfg.ReplyDelayMinMs
		if cfg.ReplyDelayMaxMs > cfg.ReplyDelayMinMs {
			delayMs = cfg.ReplyDelayMinMs + rand.Intn(cfg.ReplyDelayMaxMs-cfg.ReplyDelayMinMs+1)
		}
		if delayMs > 0 {
			if cfg.ShowTyping {
				_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresenceComposing, types.ChatPresenceMediaText)
			}
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
			if cfg.ShowTyping {
				_ = client.SendChatPresence(ctx, evt.Info.Chat, types.ChatPresencePaused, types.ChatPresenceMediaText)
			}
		}

		if _, err := client.SendMessage(ctx, evt.Info.Chat, &waE2E.Message{Conversation: &response}); err != nil {
			log.Printf("Failed to send response: %v", err)
		}
	})

	// 8. Initialize Client (DB, Device, etc) - DO NOT CONNECT YET
	if err := waService.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize WhatsApp service: %v", err)
	}

	// 9. Connect / Login Logic
	if !waService.IsLoggedIn() {
		if cfg.BotPhone != "" {
			if err := waService.Connect(); err != nil {
				log.Fatalf("Failed to connect for pairing: %v", err)
			}

			log.Println("Not logged in. Attempting to pair with phone:", cfg.BotPhone)
			code, err := waService.Pair(ctx, cfg.BotPhone)
			if err != nil {
				log.Printf("Failed to generate pair code: %v", err)
			} else {
				log.Println("==================================================")
				log.Printf("PAIR CODE: %s", code)
				log.Println("==================================================")
				log.Println("Please verify this code on your WhatsApp (Linked Devices > Link with phone number)")
			}
		} else {
			log.Println("Not logged in. BOT_PHONE not set. Printing QR...")
			// PrintQR connects after opening the QR channel to avoid missing the first code.
			go waService.PrintQR(ctx)
		}
	} else {
		if err := waService.Connect(); err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		log.Println("Client is already logged in.")
	}

	// 10. Reminders
	notifier := wa.NewNotifier(waService, prefs, logger.Sub("Notifier"))
	scheduler := reminder.NewScheduler(tr, prefs, notifier, cfg.ReminderInterval, cfg.ReminderThreshold, logger.Sub("Reminder"))
	go scheduler.Run(ctx)

	log.Println("HydroHero is running... Press Ctrl+C to exit.")

	<-ctx.Done()

	log.Println("Shutting down...")
	waService.Disconnect()
}
