package domain

import (
	"slices"
	"time"
)

// SocialPost is an in-memory feed entry.
type SocialPost struct {
	Timestamp time.Time `json:"timestamp"`
	Content   string    `json:"content"`
}

// State is the derived view of one user. A State is never modified after it
// is published; updates build a new value.
type State struct {
	UserID          string
	Today           time.Time
	CurrentIntake   int
	DailyGoal       int
	ProgressPercent float64
	DailyIntakes    map[time.Time]int
	WeeklyTotals    map[time.Time]int
	MonthlyTotals   map[time.Time]int
	Achievements    []Badge
	SocialFeed      []SocialPost
	Profile         UserProfile
}

func (s State) HasBadge(b Badge) bool {
	return slices.Contains(s.Achievements, b)
}

// Remaining is the amount still needed to reach the goal, never negative.
func (s State) Remaining() int {
	return max(s.DailyGoal-s.CurrentIntake, 0)
}

// WithPost returns a copy of s with post at the head of the feed.
func (s State) WithPost(post SocialPost) State {
	feed := make([]SocialPost, 0, len(s.SocialFeed)+1)
	feed = append(feed, post)
	feed = append(feed, s.SocialFeed...)
	s.SocialFeed = feed
	return s
}

// DeriveInput is everything read from storage for one recompute.
type DeriveInput struct {
	UserID        string
	Today         time.Time
	Records       []IntakeRecord
	DailyGoal     int
	Profile       UserProfile
	ClampProgress bool
}

// Derive rebuilds the state from storage data. Only the badges and the feed
// carry over from prev.
func Derive(prev State, in DeriveInput) State {
	agg := Aggregate(in.Records, in.Today)

	next := State{
		UserID:          in.UserID,
		Today:           DateOf(in.Today),
		CurrentIntake:   agg.CurrentIntake,
		DailyGoal:       in.DailyGoal,
		ProgressPercent: ProgressPercent(agg.CurrentIntake, in.DailyGoal, in.ClampProgress),
		DailyIntakes:    agg.DailyIntakes,
		WeeklyTotals:    agg.WeeklyTotals,
		MonthlyTotals:   agg.MonthlyTotals,
		SocialFeed:      prev.SocialFeed,
		Profile:         in.Profile,
	}
	next.Achievements = EvaluateAchievements(prev.Achievements, AchievementInput{
		CurrentIntake: next.CurrentIntake,
		DailyGoal:     next.DailyGoal,
		History:       in.Records,
	})
	return next
}

// Recommendation is a short nudge based on progress towards the goal.
func Recommendation(current, goal int) string {
	switch {
	case float64(current) < float64(goal)*0.5:
		return "You're falling behind! Try to drink more water."
	case current < goal:
		return "You're doing well, but try to drink a bit more to reach your goal."
	default:
		return "Great job! You've reached your daily goal."
	}
}
