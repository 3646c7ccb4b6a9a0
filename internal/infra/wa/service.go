package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

type MessageHandler func(ctx context.Context, client *whatsmeow.Client, evt *events.Message)

type Service struct {
	client         *whatsmeow.Client
	dbBasePath     string
	log            walog.Logger
	messageHandler MessageHandler
}

func NewService(dbBasePath string, logger walog.Logger) *Service {
	return &Service{
		dbBasePath: dbBasePath,
		log:        logger,
	}
}

func (s *Service) Initialize(ctx context.Context) error {
	// whatsmeow keeps its own connection to the same file; busy_timeout keeps
	// it from failing while the bot's repositories write.
	dbAddress := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.dbBasePath)
	container, err := sqlstore.New(ctx, "sqlite", dbAddress, s.log.Sub("Database"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("failed to get devices: %w", err)
	}

	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log)
	s.registerEventHandlers()

	return nil
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) registerEventHandlers() {
	s.client.AddEventHandler(func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			if s.messageHandler != nil {
				go s.messageHandler(context.Background(), s.client, v)
			}
		case *events.LoggedOut:
			s.log.Warnf("Logged out from WhatsApp: %v", v.Reason)
		}
	})
}

func (s *Service) GetClient() *whatsmeow.Client {
	return s.client
}

func (s *Service) IsLoggedIn() bool {
	return s.client != nil && s.client.Store.ID != nil
}

// Ready reports whether messages can be sent right now.
func (s *Service) Ready() bool {
	return s.IsLoggedIn() && s.client.IsConnected()
}

// SendText sends a plain text message to a user, addressed by phone number.
func (s *Service) SendText(ctx context.Context, phone, text string) error {
	if !s.Ready() {
		return fmt.Errorf("client not connected")
	}
	to := types.NewJID(phone, types.DefaultUserServer)
	_, err := s.client.SendMessage(ctx, to, &waE2E.Message{Conversation: &text})
	return err
}

// ResolveUserID maps a sender JID to the phone number used as the user ID.
// Hidden-number senders (LIDs) are looked up in the device store and fall
// back to the raw LID when no mapping is known yet.
func (s *Service) ResolveUserID(ctx context.Context, sender types.JID) string {
	if sender.Server != types.HiddenUserServer {
		return sender.User
	}
	if s.client == nil {
		return sender.User
	}
	pn, err := s.client.Store.LIDs.GetPNForLID(ctx, sender)
	if err != nil || pn.IsEmpty() {
		s.log.Debugf("No phone number known for %s: %v", sender, err)
		return sender.User
	}
	return pn.User
}

func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}

	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

func (s *Service) PrintQR(ctx context.Context) {
	if s.client.Store.ID != nil {
		return
	}
	qrChan, _ := s.client.GetQRChannel(ctx)
	if err := s.client.Connect(); err != nil {
		fmt.Println("Failed to connect for QR:", err)
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			fmt.Println("QR Code:", evt.Code)
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			fmt.Println("Login event:", evt.Event)
		}
	}
}
