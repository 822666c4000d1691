package service

import (
	"context"
	"testing"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
)

func TestDashboardGet(t *testing.T) {
	stats := newFakeStatsRepo()
	acts := newFakeActRepo()
	acts.feedRows = []repository.ActRow{{Username: "kind_kat"}}
	leaderboard := &fakeLeaderboardRepo{rows: []repository.LeaderboardRow{{Username: "kind_kat", Credits: 7}}}

	svc := NewDashboardService(stats, acts, leaderboard)
	dash, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if dash.Stats == nil || dash.Stats.UserID != "user-1" {
		t.Fatalf("Stats = %+v", dash.Stats)
	}
	// No act yet today is not an error.
	if dash.TodaysAct != nil {
		t.Fatalf("TodaysAct = %+v", dash.TodaysAct)
	}
	if len(dash.CommunityFeed) != 1 || len(dash.Leaderboard) != 1 {
		t.Fatalf("feed=%d leaderboard=%d", len(dash.CommunityFeed), len(dash.Leaderboard))
	}
	if dash.Quote == "" {
		t.Fatal("no daily quote")
	}
	if leaderboard.lastWindow != repository.RangeAll {
		t.Fatalf("dashboard leaderboard window = %s", leaderboard.lastWindow)
	}
}

func TestDashboardIncludesTodaysAct(t *testing.T) {
	stats := newFakeStatsRepo()
	acts := newFakeActRepo()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	_ = acts.Create(context.Background(), &model.KindnessAct{
		ID: "act-1", UserID: "user-1", ActDate: today,
		VerificationStatus: model.StatusPending,
	})

	svc := NewDashboardService(stats, acts, &fakeLeaderboardRepo{})
	dash, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if dash.TodaysAct == nil || dash.TodaysAct.ID != "act-1" {
		t.Fatalf("TodaysAct = %+v", dash.TodaysAct)
	}
}

func TestDailyQuoteRotates(t *testing.T) {
	// Same day always yields the same quote.
	day := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	if dailyQuote(day) != dailyQuote(day.Add(10*time.Hour)) {
		t.Fatal("quote changed within a day")
	}
	// Consecutive days walk the list.
	if dailyQuote(day) == dailyQuote(day.AddDate(0, 0, 1)) {
		t.Fatal("quote did not rotate to the next day")
	}
}

func TestAdminOverview(t *testing.T) {
	users := newFakeUserRepo()
	seedUser(t, users, "user-1", "password123")
	acts := newFakeActRepo()
	today := time.Now().UTC().Truncate(24 * time.Hour)
	_ = acts.Create(context.Background(), &model.KindnessAct{
		ID: "act-1", UserID: "user-1", ActDate: today,
		VerificationStatus: model.StatusVerified, CreditsAwarded: 3,
	})
	_ = acts.Create(context.Background(), &model.KindnessAct{
		ID: "act-2", UserID: "user-1", ActDate: today.AddDate(0, 0, -2),
		VerificationStatus: model.StatusVerified, CreditsAwarded: 2,
	})
	_ = acts.Create(context.Background(), &model.KindnessAct{
		ID: "act-3", UserID: "user-1", ActDate: today,
		VerificationStatus: model.StatusPending,
	})

	svc := NewAdminService(users, acts, newFakeStatsRepo())
	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if overview.TotalUsers != 1 {
		t.Fatalf("TotalUsers = %d", overview.TotalUsers)
	}
	if overview.VerifiedToday != 1 {
		t.Fatalf("VerifiedToday = %d", overview.VerifiedToday)
	}
	if overview.VerifiedWeek != 2 {
		t.Fatalf("VerifiedWeek = %d", overview.VerifiedWeek)
	}
	if overview.CreditsDistributed != 5 {
		t.Fatalf("CreditsDistributed = %d", overview.CreditsDistributed)
	}
}
