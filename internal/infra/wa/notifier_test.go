package wa_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vega9999/HydroHero/internal/domain"
	"github.com/vega9999/HydroHero/internal/infra/wa"
)

type fakeSender struct {
	ready bool
	err   error
	sent  map[string]string
}

func (f *fakeSender) Ready() bool { return f.ready }

func (f *fakeSender) SendText(ctx context.Context, phone, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent[phone] = text
	return nil
}

type fakePermissions struct {
	denied map[string]bool
}

func (f *fakePermissions) HasPermission(ctx context.Context, userID, channel string) (bool, error) {
	return !f.denied[userID+"/"+channel], nil
}

func (f *fakePermissions) SetPermission(ctx context.Context, userID, channel string, allowed bool) error {
	f.denied[userID+"/"+channel] = !allowed
	return nil
}

func reminderFor(user string) domain.Notification {
	return domain.Notification{
		Channel:   domain.ReminderChannel,
		Recipient: user,
		Title:     "Hydration Reminder",
		Body:      "Drink up",
	}
}

func TestNotify_Sends(t *testing.T) {
	sender := &fakeSender{ready: true, sent: map[string]string{}}
	n := wa.NewNotifier(sender, &fakePermissions{denied: map[string]bool{}}, nil)

	if err := n.Notify(context.Background(), reminderFor("628123")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := sender.sent["628123"]; got != "*Hydration Reminder*\nDrink up" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestNotify_SilentlySkips(t *testing.T) {
	perms := &fakePermissions{denied: map[string]bool{}}
	perms.SetPermission(context.Background(), "628123", domain.ReminderChannel, false)

	sender := &fakeSender{ready: true, sent: map[string]string{}}
	n := wa.NewNotifier(sender, perms, nil)
	if err := n.Notify(context.Background(), reminderFor("628123")); err != nil {
		t.Errorf("Denied channel should be a no-op, got %v", err)
	}

	offline := &fakeSender{ready: false, sent: map[string]string{}}
	n = wa.NewNotifier(offline, &fakePermissions{denied: map[string]bool{}}, nil)
	if err := n.Notify(context.Background(), reminderFor("628999")); err != nil {
		t.Errorf("Offline client should be a no-op, got %v", err)
	}

	if len(sender.sent)+len(offline.sent) != 0 {
		t.Errorf("Nothing should be sent, got %v %v", sender.sent, offline.sent)
	}
}

func TestNotify_SendError(t *testing.T) {
	sendErr := errors.New("timeout")
	sender := &fakeSender{ready: true, err: sendErr, sent: map[string]string{}}
	n := wa.NewNotifier(sender, &fakePermissions{denied: map[string]bool{}}, nil)

	if err := n.Notify(context.Background(), reminderFor("628123")); !errors.Is(err, sendErr) {
		t.Errorf("Expected wrapped send error, got %v", err)
	}
}
