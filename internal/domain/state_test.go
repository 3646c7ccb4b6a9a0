package domain_test

import (
	"testing"
	"time"

	"github.com/vega9999/HydroHero/internal/domain"
)

func TestDerive_GoalReachedExample(t *testing.T) {
	in := domain.DeriveInput{
		UserID:    "user1",
		Today:     day("2026-10-18"),
		Records:   []domain.IntakeRecord{rec("2026-10-18", 2000)},
		DailyGoal: 2000,
		Profile:   domain.DefaultProfile(),
	}
	s := domain.Derive(domain.State{}, in)

	if s.ProgressPercent != 100 {
		t.Errorf("Expected progress 100, got %.2f", s.ProgressPercent)
	}
	if !s.HasBadge(domain.BadgeDailyGoal) {
		t.Errorf("Expected 'Daily Goal Achieved', got %v", s.Achievements)
	}
	if s.Remaining() != 0 {
		t.Errorf("Expected nothing remaining, got %d", s.Remaining())
	}
}

func TestDerive_KeepsFeedAndBadges(t *testing.T) {
	prev := domain.State{
		Achievements: []domain.Badge{domain.BadgeWeekStreak},
		SocialFeed:   []domain.SocialPost{{Timestamp: time.Now(), Content: "hello"}},
	}
	s := domain.Derive(prev, domain.DeriveInput{UserID: "user1", Today: day("2026-10-18"), DailyGoal: 2000})

	if !s.HasBadge(domain.BadgeWeekStreak) {
		t.Errorf("Badges must carry over, got %v", s.Achievements)
	}
	if len(s.SocialFeed) != 1 || s.SocialFeed[0].Content != "hello" {
		t.Errorf("Feed must carry over, got %v", s.SocialFeed)
	}
}

func TestState_WithPostIsNewestFirst(t *testing.T) {
	s := domain.State{}
	s1 := s.WithPost(domain.SocialPost{Content: "first"})
	s2 := s1.WithPost(domain.SocialPost{Content: "second"})

	if len(s1.SocialFeed) != 1 {
		t.Errorf("Earlier snapshot must be unchanged, got %v", s1.SocialFeed)
	}
	if s2.SocialFeed[0].Content != "second" || s2.SocialFeed[1].Content != "first" {
		t.Errorf("Expected newest first, got %v", s2.SocialFeed)
	}
}

func TestRecommendation(t *testing.T) {
	tests := []struct {
		current, goal int
		want          string
	}{
		{500, 2000, "You're falling behind! Try to drink more water."},
		{1000, 2000, "You're doing well, but try to drink a bit more to reach your goal."},
		{2000, 2000, "Great job! You've reached your daily goal."},
	}
	for _, tt := range tests {
		if got := domain.Recommendation(tt.current, tt.goal); got != tt.want {
			t.Errorf("Recommendation(%d, %d): expected %q, got %q", tt.current, tt.goal, tt.want, got)
		}
	}
}
