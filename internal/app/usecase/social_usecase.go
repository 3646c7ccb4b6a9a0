package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/vega9999/HydroHero/internal/app/tracker"
	"github.com/vega9999/HydroHero/internal/domain"
)

const feedLimit = 10

type SocialUsecase struct {
	tracker *tracker.Tracker
	text    *Formatter
}

func NewSocialUsecase(tr *tracker.Tracker, f *Formatter) *SocialUsecase {
	return &SocialUsecase{tracker: tr, text: formatterOrDefault(f)}
}

// Post adds content to the head of the user's feed. Posts live in memory only.
func (uc *SocialUsecase) Post(ctx context.Context, userID, content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "Write something after #post, e.g. #post Finished my 2L today!", nil
	}

	post := domain.SocialPost{Timestamp: uc.tracker.Now(), Content: content}
	s, err := uc.tracker.Update(ctx, userID, func(s domain.State) domain.State {
		return s.WithPost(post)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("📝 Posted. Your feed has %d post(s).", len(s.SocialFeed)), nil
}

func (uc *SocialUsecase) Feed(ctx context.Context, userID string) (string, error) {
	s, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(s.SocialFeed) == 0 {
		return "Your feed is empty. Share your hydration journey with #post.", nil
	}

	sb := strings.Builder{}
	sb.WriteString("📰 Your feed\n")
	for i, p := range s.SocialFeed {
		if i == feedLimit {
			break
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n", p.Timestamp.Format("02 Jan 15:04"), p.Content))
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

func (uc *SocialUsecase) Share(ctx context.Context, userID string) (string, error) {
	s, err := uc.tracker.Snapshot(ctx, userID)
	if err != nil {
		return "", err
	}
	return uc.text.Sprintf("I've drunk %s of water today with HydroHero!", uc.text.ML(s.CurrentIntake)), nil
}
