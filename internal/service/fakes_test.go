package service

import (
	"context"
	"errors"
	"time"

	"github.com/supriety/kindness-track/internal/model"
	"github.com/supriety/kindness-track/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository stand-ins. They mirror the contract the SQL
// implementations expose, including the gorm.ErrRecordNotFound and
// repository.ErrNotPending sentinels the services switch on.

type fakeActRepo struct {
	acts  map[string]*model.KindnessAct
	order []string

	feedRows   []repository.ActRow
	feedCalls  int
	lastWindow repository.FeedWindow
	lastSort   repository.FeedSort
}

func newFakeActRepo() *fakeActRepo {
	return &fakeActRepo{acts: map[string]*model.KindnessAct{}}
}

func (f *fakeActRepo) Create(_ context.Context, act *model.KindnessAct) error {
	cp := *act
	f.acts[act.ID] = &cp
	f.order = append(f.order, act.ID)
	return nil
}

func (f *fakeActRepo) FindByID(_ context.Context, id string) (*model.KindnessAct, error) {
	act, ok := f.acts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *act
	return &cp, nil
}

func (f *fakeActRepo) FindRowByID(ctx context.Context, id string) (*repository.ActRow, error) {
	act, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &repository.ActRow{KindnessAct: *act, Username: "kind_kat"}, nil
}

func (f *fakeActRepo) ListByUser(_ context.Context, userID string, status model.VerificationStatus, limit int) ([]repository.ActRow, error) {
	var rows []repository.ActRow
	for _, id := range f.order {
		act := f.acts[id]
		if act == nil || act.UserID != userID {
			continue
		}
		if status != "" && act.VerificationStatus != status {
			continue
		}
		rows = append(rows, repository.ActRow{KindnessAct: *act, Username: "kind_kat"})
		if len(rows) == limit {
			break
		}
	}
	return rows, nil
}

func (f *fakeActRepo) ListVerifiedPublic(_ context.Context, userID string, limit int) ([]repository.ActRow, error) {
	var rows []repository.ActRow
	for _, id := range f.order {
		act := f.acts[id]
		if act == nil || act.UserID != userID {
			continue
		}
		if act.VerificationStatus != model.StatusVerified || act.Visibility == model.VisibilityPrivate {
			continue
		}
		rows = append(rows, repository.ActRow{KindnessAct: *act, Username: "kind_kat"})
		if len(rows) == limit {
			break
		}
	}
	return rows, nil
}

func (f *fakeActRepo) ListPending(_ context.Context) ([]repository.ActRow, error) {
	var rows []repository.ActRow
	for _, id := range f.order {
		act := f.acts[id]
		if act != nil && act.VerificationStatus == model.StatusPending {
			rows = append(rows, repository.ActRow{KindnessAct: *act, Username: "kind_kat"})
		}
	}
	return rows, nil
}

func (f *fakeActRepo) ListFeed(_ context.Context, window repository.FeedWindow, sort repository.FeedSort, _ int) ([]repository.ActRow, error) {
	f.feedCalls++
	f.lastWindow = window
	f.lastSort = sort
	return f.feedRows, nil
}

func (f *fakeActRepo) FindTodaysAct(_ context.Context, userID string) (*model.KindnessAct, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, id := range f.order {
		act := f.acts[id]
		if act != nil && act.UserID == userID && act.ActDate.Equal(today) {
			cp := *act
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeActRepo) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	act, ok := f.acts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "title":
			act.Title = v.(string)
		case "description":
			act.Description = v.(string)
		case "category":
			act.Category = model.ActCategory(v.(string))
		case "location":
			loc := v.(string)
			act.Location = &loc
		case "visibility":
			act.Visibility = model.Visibility(v.(string))
		case "media_url":
			url := v.(string)
			act.MediaURL = &url
		case "media_type":
			typ := v.(string)
			act.MediaType = &typ
		}
	}
	return nil
}

func (f *fakeActRepo) Delete(_ context.Context, id string) error {
	delete(f.acts, id)
	return nil
}

func (f *fakeActRepo) CountVerifiedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, act := range f.acts {
		if act.VerificationStatus == model.StatusVerified && !act.ActDate.Before(since) {
			count++
		}
	}
	return count, nil
}

func (f *fakeActRepo) SumCreditsAwarded(_ context.Context) (int64, error) {
	var total int64
	for _, act := range f.acts {
		if act.VerificationStatus == model.StatusVerified {
			total += int64(act.CreditsAwarded)
		}
	}
	return total, nil
}

type fakeReactionRepo struct {
	reactions map[string]*model.ActReaction
}

func newFakeReactionRepo() *fakeReactionRepo {
	return &fakeReactionRepo{reactions: map[string]*model.ActReaction{}}
}

func reactionKey(actID, userID string) string {
	return actID + "|" + userID
}

func (f *fakeReactionRepo) Upsert(_ context.Context, reaction *model.ActReaction) error {
	key := reactionKey(reaction.ActID, reaction.UserID)
	if existing, ok := f.reactions[key]; ok {
		existing.ReactionType = reaction.ReactionType
		return nil
	}
	cp := *reaction
	f.reactions[key] = &cp
	return nil
}

func (f *fakeReactionRepo) Delete(_ context.Context, actID, userID string) (bool, error) {
	key := reactionKey(actID, userID)
	if _, ok := f.reactions[key]; !ok {
		return false, nil
	}
	delete(f.reactions, key)
	return true, nil
}

func (f *fakeReactionRepo) Find(_ context.Context, actID, userID string) (*model.ActReaction, error) {
	reaction, ok := f.reactions[reactionKey(actID, userID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *reaction
	return &cp, nil
}

type fakeCommentRepo struct {
	comments []model.ActComment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.ActComment) error {
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByAct(_ context.Context, actID string) ([]repository.CommentRow, error) {
	var rows []repository.CommentRow
	for _, c := range f.comments {
		if c.ActID == actID {
			rows = append(rows, repository.CommentRow{ActComment: c, Username: "kind_kat"})
		}
	}
	return rows, nil
}

type fakeMedia struct {
	err    error
	stored int
}

func (f *fakeMedia) Store(_ context.Context, file *MediaFile) (*StoredMedia, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.stored++
	return &StoredMedia{URL: "/uploads/" + file.Name, Type: coarseType(file.ContentType)}, nil
}

type fakeReviewRepo struct {
	acts  *fakeActRepo
	stats map[string]*model.UserStats
}

func newFakeReviewRepo(acts *fakeActRepo) *fakeReviewRepo {
	return &fakeReviewRepo{acts: acts, stats: map[string]*model.UserStats{}}
}

func (f *fakeReviewRepo) Verify(_ context.Context, actID, adminID string, credits int) (*model.KindnessAct, *model.UserStats, error) {
	act, ok := f.acts.acts[actID]
	if !ok {
		return nil, nil, gorm.ErrRecordNotFound
	}
	if act.VerificationStatus != model.StatusPending {
		return nil, nil, repository.ErrNotPending
	}

	now := time.Now().UTC()
	act.VerificationStatus = model.StatusVerified
	act.VerifiedAt = &now
	act.VerifiedBy = &adminID
	act.CreditsAwarded = credits

	stats, ok := f.stats[act.UserID]
	if !ok {
		stats = &model.UserStats{UserID: act.UserID}
		f.stats[act.UserID] = stats
	}
	stats.ApplyVerified(credits, act.ActDate)

	actCp, statsCp := *act, *stats
	return &actCp, &statsCp, nil
}

func (f *fakeReviewRepo) Reject(_ context.Context, actID, adminID, reason string) (*model.KindnessAct, error) {
	act, ok := f.acts.acts[actID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if act.VerificationStatus != model.StatusPending {
		return nil, repository.ErrNotPending
	}

	now := time.Now().UTC()
	act.VerificationStatus = model.StatusRejected
	act.VerifiedAt = &now
	act.VerifiedBy = &adminID
	act.RejectionReason = &reason

	cp := *act
	return &cp, nil
}

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByIdentifier(_ context.Context, identifier string) (*model.User, error) {
	for _, user := range f.users {
		if user.Email == identifier || user.Username == identifier {
			cp := *user
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) IdentityTaken(_ context.Context, email, username string) (bool, error) {
	for _, user := range f.users {
		if user.Email == email || user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "email":
			user.Email = v.(string)
		case "password_hash":
			user.PasswordHash = v.(string)
		case "full_name":
			user.FullName = v.(string)
		case "bio":
			user.Bio = v.(string)
		case "avatar_url":
			url := v.(string)
			user.AvatarURL = &url
		}
	}
	return f.FindByID(ctx, id)
}

func (f *fakeUserRepo) List(_ context.Context, _ string, _ int) ([]model.User, error) {
	var users []model.User
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeStatsRepo struct {
	stats map[string]*model.UserStats
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: map[string]*model.UserStats{}}
}

func (f *fakeStatsRepo) Create(_ context.Context, userID string) error {
	if _, ok := f.stats[userID]; !ok {
		f.stats[userID] = &model.UserStats{UserID: userID}
	}
	return nil
}

func (f *fakeStatsRepo) GetOrCreate(ctx context.Context, userID string) (*model.UserStats, error) {
	if err := f.Create(ctx, userID); err != nil {
		return nil, err
	}
	cp := *f.stats[userID]
	return &cp, nil
}

func (f *fakeStatsRepo) MostActive(_ context.Context, _ int) ([]repository.LeaderboardRow, error) {
	return nil, nil
}

type fakeLeaderboardRepo struct {
	rows       []repository.LeaderboardRow
	calls      int
	lastWindow repository.LeaderboardWindow
}

func (f *fakeLeaderboardRepo) Top(_ context.Context, window repository.LeaderboardWindow, _ int) ([]repository.LeaderboardRow, error) {
	f.calls++
	f.lastWindow = window
	return f.rows, nil
}

var errStorageDown = errors.New("storage unavailable")
