package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/supriety/kindness-track/internal/model"
)

type reviewFixture struct {
	svc     ReviewService
	acts    *fakeActRepo
	reviews *fakeReviewRepo
}

func newReviewFixture() *reviewFixture {
	acts := newFakeActRepo()
	reviews := newFakeReviewRepo(acts)
	return &reviewFixture{
		svc:     NewReviewService(acts, reviews),
		acts:    acts,
		reviews: reviews,
	}
}

func (f *reviewFixture) seedPending(id, userID string) {
	_ = f.acts.Create(context.Background(), &model.KindnessAct{
		ID:                 id,
		UserID:             userID,
		Title:              "seed",
		Description:        "seed",
		Category:           model.CategoryCommunity,
		ActDate:            fixedNow.Truncate(24 * time.Hour),
		VerificationStatus: model.StatusPending,
		Visibility:         model.VisibilityPublic,
	})
}

func TestVerifyAwardsCreditsAndUpdatesStats(t *testing.T) {
	f := newReviewFixture()
	f.seedPending("act-1", "user-1")

	act, stats, err := f.svc.Verify(context.Background(), "act-1", "admin-1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if act.VerificationStatus != model.StatusVerified {
		t.Fatalf("status = %s", act.VerificationStatus)
	}
	if act.CreditsAwarded != 5 {
		t.Fatalf("CreditsAwarded = %d", act.CreditsAwarded)
	}
	if act.VerifiedBy == nil || *act.VerifiedBy != "admin-1" {
		t.Fatalf("VerifiedBy = %v", act.VerifiedBy)
	}
	if act.VerifiedAt == nil {
		t.Fatal("VerifiedAt not set")
	}
	if stats.TotalCredits != 5 || stats.TotalActsVerified != 1 {
		t.Fatalf("stats credits=%d acts=%d", stats.TotalCredits, stats.TotalActsVerified)
	}
	if stats.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak = %d", stats.CurrentStreak)
	}
}

func TestVerifyDefaultsCredits(t *testing.T) {
	for _, credits := range []int{0, -3} {
		f := newReviewFixture()
		f.seedPending("act-1", "user-1")

		act, stats, err := f.svc.Verify(context.Background(), "act-1", "admin-1", credits)
		if err != nil {
			t.Fatal(err)
		}
		if act.CreditsAwarded != DefaultCreditsAwarded {
			t.Fatalf("credits=%d awarded %d, want %d", credits, act.CreditsAwarded, DefaultCreditsAwarded)
		}
		if stats.TotalCredits != DefaultCreditsAwarded {
			t.Fatalf("stats credits = %d", stats.TotalCredits)
		}
	}
}

func TestVerifyUnknownAct(t *testing.T) {
	f := newReviewFixture()
	if _, _, err := f.svc.Verify(context.Background(), "missing", "admin-1", 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestReviewIsOneShot(t *testing.T) {
	f := newReviewFixture()
	f.seedPending("act-1", "user-1")

	if _, _, err := f.svc.Verify(context.Background(), "act-1", "admin-1", 2); err != nil {
		t.Fatal(err)
	}

	if _, _, err := f.svc.Verify(context.Background(), "act-1", "admin-2", 2); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("second verify: want ErrAlreadyReviewed, got %v", err)
	}
	if _, err := f.svc.Reject(context.Background(), "act-1", "admin-2", "too late"); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("reject after verify: want ErrAlreadyReviewed, got %v", err)
	}

	// Credits must not be double counted.
	if stats := f.reviews.stats["user-1"]; stats.TotalCredits != 2 {
		t.Fatalf("stats credits = %d, want 2", stats.TotalCredits)
	}
}

func TestReject(t *testing.T) {
	f := newReviewFixture()
	f.seedPending("act-1", "user-1")

	if _, err := f.svc.Reject(context.Background(), "act-1", "admin-1", ""); err == nil {
		t.Fatal("empty reason accepted")
	}

	act, err := f.svc.Reject(context.Background(), "act-1", "admin-1", "no evidence provided")
	if err != nil {
		t.Fatal(err)
	}
	if act.VerificationStatus != model.StatusRejected {
		t.Fatalf("status = %s", act.VerificationStatus)
	}
	if act.RejectionReason == nil || *act.RejectionReason != "no evidence provided" {
		t.Fatalf("RejectionReason = %v", act.RejectionReason)
	}

	// Rejection never touches stats.
	if _, ok := f.reviews.stats["user-1"]; ok {
		t.Fatal("stats row created on rejection")
	}
}

func TestListPending(t *testing.T) {
	f := newReviewFixture()
	f.seedPending("act-1", "user-1")
	f.seedPending("act-2", "user-2")
	if _, _, err := f.svc.Verify(context.Background(), "act-1", "admin-1", 1); err != nil {
		t.Fatal(err)
	}

	rows, err := f.svc.ListPending(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ID != "act-2" {
		t.Fatalf("pending = %+v", rows)
	}
}
