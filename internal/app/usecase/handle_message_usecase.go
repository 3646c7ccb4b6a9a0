package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vega9999/HydroHero/internal/domain"
)

type WaterAdder interface {
	Execute(ctx context.Context, userID string, amount int) (string, error)
}

type GoalSetter interface {
	Execute(ctx context.Context, userID string, goal int) (string, error)
}

type ProfileUpdater interface {
	Execute(ctx context.Context, userID string, update domain.ProfileUpdate) (string, error)
}

type Viewer interface {
	Execute(ctx context.Context, userID string) (string, error)
}

type HistoryViewer interface {
	Execute(ctx context.Context, userID string) (string, error)
	Range(ctx context.Context, userID string, days int) (string, error)
}

type Socializer interface {
	Post(ctx context.Context, userID, content string) (string, error)
	Feed(ctx context.Context, userID string) (string, error)
	Share(ctx context.Context, userID string) (string, error)
}

type ReminderToggler interface {
	Execute(ctx context.Context, userID string, enabled bool) (string, error)
}

type Authenticator interface {
	Register(ctx context.Context, userID, email, password, displayName string) domain.AuthResult
	Login(ctx context.Context, userID, email, password string) domain.AuthResult
	Guest(ctx context.Context, userID string) domain.AuthResult
}

// MessageHandlers are the operations a chat command can reach.
type MessageHandlers struct {
	AddWater     WaterAdder
	SetGoal      GoalSetter
	Profile      ProfileUpdater
	Status       Viewer
	History      HistoryViewer
	Achievements Viewer
	Social       Socializer
	Reminder     ReminderToggler
	Auth         Authenticator
}

type HandleMessageUsecase struct {
	h MessageHandlers
}

func NewHandleMessageUsecase(h MessageHandlers) *HandleMessageUsecase {
	return &HandleMessageUsecase{h: h}
}

const helpText = `💧 HydroHero commands
#drink <ml> - log water, e.g. #drink 250
#goal <ml> - set your daily goal
#profile - show your profile
#profile weight=70 age=30 gender=male activity=active location=desert - update it
#profile goal=<ml>|auto - fix your goal or compute it again
#status - today's progress
#history - last 7 days, weekly and monthly totals
#history <days> - every logged day in that range
#badges - your achievements
#post <text> - add to your feed
#feed - show your feed
#share - share today's progress
#reminder on|off - hydration reminders
#register <email> <password> [name] - create an account
#login <email> <password> - log in
#guest - continue as guest`

// Execute routes a chat message to its command. Messages that are not a
// known command produce an empty reply.
func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string) (string, error) {
	fields := strings.Fields(msg)
	if len(fields) == 0 {
		return "", nil
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	var reply string
	var err error

	switch cmd {
	case "#drink", "#water":
		amount, perr := parseAmount(args)
		if perr != nil {
			return "Usage: #drink <ml>, e.g. #drink 250", nil
		}
		reply, err = uc.h.AddWater.Execute(ctx, userID, amount)
	case "#goal":
		goal, perr := parseAmount(args)
		if perr != nil {
			return "Usage: #goal <ml>, e.g. #goal 2500", nil
		}
		reply, err = uc.h.SetGoal.Execute(ctx, userID, goal)
	case "#profile":
		update, perr := ParseProfileUpdate(args)
		if perr != nil {
			return userError(perr), nil
		}
		reply, err = uc.h.Profile.Execute(ctx, userID, update)
	case "#status":
		reply, err = uc.h.Status.Execute(ctx, userID)
	case "#history":
		if len(args) == 0 {
			reply, err = uc.h.History.Execute(ctx, userID)
			break
		}
		days, perr := strconv.Atoi(args[0])
		if perr != nil {
			return "Usage: #history [days], e.g. #history 30", nil
		}
		reply, err = uc.h.History.Range(ctx, userID, days)
	case "#badges", "#achievements":
		reply, err = uc.h.Achievements.Execute(ctx, userID)
	case "#post":
		reply, err = uc.h.Social.Post(ctx, userID, strings.Join(args, " "))
	case "#feed":
		reply, err = uc.h.Social.Feed(ctx, userID)
	case "#share":
		reply, err = uc.h.Social.Share(ctx, userID)
	case "#reminder":
		if len(args) != 1 {
			return "Usage: #reminder on|off", nil
		}
		switch strings.ToLower(args[0]) {
		case "on":
			reply, err = uc.h.Reminder.Execute(ctx, userID, true)
		case "off":
			reply, err = uc.h.Reminder.Execute(ctx, userID, false)
		default:
			return "Usage: #reminder on|off", nil
		}
	case "#register":
		if len(args) < 2 {
			return "Usage: #register <email> <password> [name]", nil
		}
		displayName := strings.Join(args[2:], " ")
		if displayName == "" {
			displayName = name
		}
		return authReply(uc.h.Auth.Register(ctx, userID, args[0], args[1], displayName)), nil
	case "#login":
		if len(args) != 2 {
			return "Usage: #login <email> <password>", nil
		}
		return authReply(uc.h.Auth.Login(ctx, userID, args[0], args[1])), nil
	case "#guest":
		return authReply(uc.h.Auth.Guest(ctx, userID)), nil
	case "#help":
		return helpText, nil
	default:
		return "", nil
	}

	if err != nil {
		if isUserError(err) {
			return userError(err), nil
		}
		return "", err
	}
	return reply, nil
}

func parseAmount(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing amount")
	}
	raw := strings.TrimSuffix(strings.ToLower(args[0]), "ml")
	return strconv.Atoi(raw)
}

func isUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrInvalidGoal) ||
		errors.Is(err, domain.ErrInvalidProfile)
}

func userError(err error) string {
	return "⚠️ " + err.Error()
}

func authReply(res domain.AuthResult) string {
	if !res.Success {
		return "⚠️ " + res.Error
	}
	return fmt.Sprintf("👋 Welcome, %s!", res.DisplayName)
}
