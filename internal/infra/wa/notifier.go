package wa

import (
	"context"
	"fmt"

	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/vega9999/HydroHero/internal/domain"
)

// TextSender is the part of Service the notifier needs.
type TextSender interface {
	Ready() bool
	SendText(ctx context.Context, phone, text string) error
}

// Notifier delivers notifications as WhatsApp messages. Users who opted out
// of a channel are skipped, and so is everything while the client is offline.
type Notifier struct {
	sender      TextSender
	permissions domain.PermissionRepository
	log         walog.Logger
}

func NewNotifier(sender TextSender, permissions domain.PermissionRepository, log walog.Logger) *Notifier {
	if log == nil {
		log = walog.Noop
	}
	return &Notifier{sender: sender, permissions: permissions, log: log}
}

func (n *Notifier) Notify(ctx context.Context, msg domain.Notification) error {
	allowed, err := n.permissions.HasPermission(ctx, msg.Recipient, msg.Channel)
	if err != nil {
		return fmt.Errorf("check permission: %w", err)
	}
	if !allowed {
		n.log.Debugf("Skipping %s notification for %s: not allowed", msg.Channel, msg.Recipient)
		return nil
	}
	if !n.sender.Ready() {
		n.log.Debugf("Skipping %s notification for %s: client offline", msg.Channel, msg.Recipient)
		return nil
	}

	text := msg.Body
	if msg.Title != "" {
		text = fmt.Sprintf("*%s*\n%s", msg.Title, msg.Body)
	}
	if err := n.sender.SendText(ctx, msg.Recipient, text); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}
