package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

// In-memory fakes backing the service tests. They mirror the sentinel
// error behavior of the real repositories.

type queueKey struct {
	userID uuid.UUID
	day    int
}

type fakeQueueRepo struct {
	entries map[queueKey]entities.ReviewQueueEntry
}

func newFakeQueueRepo() *fakeQueueRepo {
	return &fakeQueueRepo{entries: make(map[queueKey]entities.ReviewQueueEntry)}
}

func (r *fakeQueueRepo) Create(_ context.Context, e *entities.ReviewQueueEntry) (bool, error) {
	key := queueKey{e.UserID, e.Day}
	if _, ok := r.entries[key]; ok {
		return false, nil
	}
	r.entries[key] = *e
	return true, nil
}

func (r *fakeQueueRepo) Get(_ context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error) {
	e, ok := r.entries[queueKey{userID, day}]
	if !ok {
		return nil, repository.ErrEntryNotFound
	}
	copied := e
	return &copied, nil
}

func (r *fakeQueueRepo) GetForUpdate(ctx context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error) {
	return r.Get(ctx, userID, day)
}

func (r *fakeQueueRepo) Update(_ context.Context, e *entities.ReviewQueueEntry) error {
	key := queueKey{e.UserID, e.Day}
	if _, ok := r.entries[key]; !ok {
		return repository.ErrEntryNotFound
	}
	r.entries[key] = *e
	return nil
}

func (r *fakeQueueRepo) Delete(_ context.Context, userID uuid.UUID, day int) error {
	delete(r.entries, queueKey{userID, day})
	return nil
}

func (r *fakeQueueRepo) GetNextDue(_ context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewQueueEntry, error) {
	var best *entities.ReviewQueueEntry
	for key, e := range r.entries {
		if key.userID != userID || !e.Due(now) {
			continue
		}
		copied := e
		if best == nil || copied.ScheduledFor.Before(best.ScheduledFor) {
			best = &copied
		}
	}
	if best == nil {
		return nil, repository.ErrEntryNotFound
	}
	return best, nil
}

func (r *fakeQueueRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]entities.ReviewQueueEntry, error) {
	var out []entities.ReviewQueueEntry
	for key, e := range r.entries {
		if key.userID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (r *fakeQueueRepo) GetStats(_ context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewStats, error) {
	stats := &entities.ReviewStats{}
	var sum, count int
	for key, e := range r.entries {
		if key.userID != userID {
			continue
		}
		count++
		sum += e.IntervalDays
		stats.TotalReviews += e.ReviewCount
		if e.Due(now) {
			stats.DueNow++
		}
		if e.IntervalDays >= entities.ReviewLadder[len(entities.ReviewLadder)-1] {
			stats.NearCompletion++
		}
	}
	if count > 0 {
		stats.AvgIntervalDays = float64(sum) / float64(count)
	}
	return stats, nil
}

type masteryKey struct {
	userID uuid.UUID
	day    int
}

type fakeMasteryRepo struct {
	mastered map[masteryKey]time.Time
}

func newFakeMasteryRepo() *fakeMasteryRepo {
	return &fakeMasteryRepo{mastered: make(map[masteryKey]time.Time)}
}

func (r *fakeMasteryRepo) Add(_ context.Context, userID uuid.UUID, day int, masteredAt time.Time) error {
	key := masteryKey{userID, day}
	if _, ok := r.mastered[key]; !ok {
		r.mastered[key] = masteredAt
	}
	return nil
}

func (r *fakeMasteryRepo) GetDays(_ context.Context, userID uuid.UUID) ([]int, error) {
	var out []int
	for key := range r.mastered {
		if key.userID == userID {
			out = append(out, key.day)
		}
	}
	sort.Ints(out)
	return out, nil
}

// fakeTransactor runs the function directly; the fakes have no real
// transactions to coordinate.
type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeQuestionRepo struct {
	questions map[int64]entities.Question
	byDay     map[int][]entities.Question
	sets      map[int][]entities.DialogueSet
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[int64]entities.Question),
		byDay:     make(map[int][]entities.Question),
		sets:      make(map[int][]entities.DialogueSet),
	}
}

func (r *fakeQuestionRepo) add(q entities.Question) {
	r.questions[q.ID] = q
	r.byDay[q.Day] = append(r.byDay[q.Day], q)
}

func (r *fakeQuestionRepo) addSet(s entities.DialogueSet) {
	r.sets[s.Day] = append(r.sets[s.Day], s)
	for _, q := range s.Questions {
		r.add(q)
	}
}

func (r *fakeQuestionRepo) GetByID(_ context.Context, id int64) (*entities.Question, error) {
	q, ok := r.questions[id]
	if !ok {
		return nil, repository.ErrQuestionNotFound
	}
	return &q, nil
}

func (r *fakeQuestionRepo) GetByDay(_ context.Context, day int) ([]entities.Question, error) {
	return r.byDay[day], nil
}

func (r *fakeQuestionRepo) GetByDayAndTrack(_ context.Context, day int, track entities.Track) ([]entities.Question, error) {
	var out []entities.Question
	for _, q := range r.byDay[day] {
		if q.Track == track {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *fakeQuestionRepo) GetDialogueSets(_ context.Context, day int) ([]entities.DialogueSet, error) {
	return r.sets[day], nil
}

func (r *fakeQuestionRepo) ListDays(_ context.Context) ([]int, error) {
	var out []int
	for day := range r.byDay {
		out = append(out, day)
	}
	sort.Ints(out)
	return out, nil
}

func (r *fakeQuestionRepo) CountByDay(_ context.Context, day int) (int, error) {
	return len(r.byDay[day]), nil
}

type fakeSettingsRepo struct {
	settings map[uuid.UUID]entities.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: make(map[uuid.UUID]entities.UserSettings)}
}

func (r *fakeSettingsRepo) Create(_ context.Context, userID uuid.UUID) error {
	if _, ok := r.settings[userID]; !ok {
		r.settings[userID] = *entities.NewUserSettings(userID)
	}
	return nil
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	s, ok := r.settings[userID]
	if !ok {
		return nil, repository.ErrSettingsNotFound
	}
	copied := s
	return &copied, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *entities.UserSettings) error {
	if _, ok := r.settings[settings.UserID]; !ok {
		return repository.ErrSettingsNotFound
	}
	r.settings[settings.UserID] = *settings
	return nil
}

type progressKey struct {
	userID     uuid.UUID
	questionID int64
}

type fakeProgressRepo struct {
	progress map[progressKey]entities.QuestionProgress
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{progress: make(map[progressKey]entities.QuestionProgress)}
}

func (r *fakeProgressRepo) RecordAttempt(_ context.Context, p *entities.QuestionProgress) error {
	key := progressKey{p.UserID, p.QuestionID}
	stored, ok := r.progress[key]
	if !ok {
		stored = *p
		stored.Attempts = 0
		stored.Favorite = false
	}
	stored.Attempts++
	stored.LastScore = p.LastScore
	stored.LastCorrect = p.LastCorrect
	stored.WrongAnswer = !p.LastCorrect
	stored.LastAnswer = p.LastAnswer
	stored.AnsweredAt = p.AnsweredAt
	r.progress[key] = stored
	return nil
}

func (r *fakeProgressRepo) Get(_ context.Context, userID uuid.UUID, questionID int64) (*entities.QuestionProgress, error) {
	p, ok := r.progress[progressKey{userID, questionID}]
	if !ok {
		return nil, repository.ErrProgressNotFound
	}
	copied := p
	return &copied, nil
}

func (r *fakeProgressRepo) CountAnsweredInDay(_ context.Context, userID uuid.UUID, day int) (int, error) {
	count := 0
	for key, p := range r.progress {
		if key.userID == userID && p.Day == day && p.Attempts > 0 {
			count++
		}
	}
	return count, nil
}

func (r *fakeProgressRepo) TotalAttempts(_ context.Context, userID uuid.UUID) (int, error) {
	total := 0
	for key, p := range r.progress {
		if key.userID == userID {
			total += p.Attempts
		}
	}
	return total, nil
}

func (r *fakeProgressRepo) GetDayProgress(ctx context.Context, userID uuid.UUID, day int, totalQuestions int) (*entities.DayProgress, error) {
	answered, _ := r.CountAnsweredInDay(ctx, userID, day)
	correct := 0
	for key, p := range r.progress {
		if key.userID == userID && p.Day == day && p.LastCorrect {
			correct++
		}
	}
	return &entities.DayProgress{
		Day:       day,
		Total:     totalQuestions,
		Answered:  answered,
		Correct:   correct,
		Completed: totalQuestions > 0 && answered >= totalQuestions,
	}, nil
}

func (r *fakeProgressRepo) SetFavorite(_ context.Context, userID uuid.UUID, questionID int64, day int, favorite bool) error {
	key := progressKey{userID, questionID}
	p, ok := r.progress[key]
	if !ok {
		p = entities.QuestionProgress{UserID: userID, QuestionID: questionID, Day: day}
	}
	p.Favorite = favorite
	r.progress[key] = p
	return nil
}

func (r *fakeProgressRepo) ListWrongAnswers(_ context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	var out []entities.QuestionProgress
	for key, p := range r.progress {
		if key.userID == userID && p.WrongAnswer {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProgressRepo) ListFavorites(_ context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	var out []entities.QuestionProgress
	for key, p := range r.progress {
		if key.userID == userID && p.Favorite {
			out = append(out, p)
		}
	}
	return out, nil
}

type badgeKey struct {
	userID uuid.UUID
	code   entities.BadgeCode
}

type fakeBadgeRepo struct {
	awarded map[badgeKey]time.Time
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{awarded: make(map[badgeKey]time.Time)}
}

func (r *fakeBadgeRepo) Award(_ context.Context, userID uuid.UUID, code entities.BadgeCode, awardedAt time.Time) (bool, error) {
	key := badgeKey{userID, code}
	if _, ok := r.awarded[key]; ok {
		return false, nil
	}
	r.awarded[key] = awardedAt
	return true, nil
}

func (r *fakeBadgeRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]entities.UserBadge, error) {
	var out []entities.UserBadge
	for key, at := range r.awarded {
		if key.userID == userID {
			out = append(out, entities.UserBadge{UserID: userID, Code: key.code, AwardedAt: at})
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	byID    map[uuid.UUID]entities.User
	byEmail map[string]uuid.UUID
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[uuid.UUID]entities.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entities.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrEmailTaken
	}
	r.byID[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id uuid.UUID, avatarID int) error {
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AvatarID = avatarID
	r.byID[id] = u
	return nil
}

type fakeTokenRepo struct {
	byHash map[string]entities.RefreshToken
	nextID int64
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{byHash: make(map[string]entities.RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, t *entities.RefreshToken) error {
	r.nextID++
	t.ID = r.nextID
	r.byHash[t.TokenHash] = *t
	return nil
}

func (r *fakeTokenRepo) GetByHash(_ context.Context, hash string, now time.Time) (*entities.RefreshToken, error) {
	t, ok := r.byHash[hash]
	if !ok || !t.ExpiresAt.After(now) {
		return nil, repository.ErrTokenNotFound
	}
	copied := t
	return &copied, nil
}

func (r *fakeTokenRepo) DeleteByHash(_ context.Context, hash string) error {
	delete(r.byHash, hash)
	return nil
}

func (r *fakeTokenRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	for hash, t := range r.byHash {
		if t.UserID == userID {
			delete(r.byHash, hash)
		}
	}
	return nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	for hash, t := range r.byHash {
		if !t.ExpiresAt.After(now) {
			delete(r.byHash, hash)
			purged++
		}
	}
	return purged, nil
}

type fakeBlacklist struct {
	revoked map[string]bool
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{revoked: make(map[string]bool)}
}

func (b *fakeBlacklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	b.revoked[jti] = true
	return nil
}

func (b *fakeBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return b.revoked[jti], nil
}

type activityKey struct {
	userID uuid.UUID
	date   time.Time
}

type fakeActivityRepo struct {
	activity map[activityKey]entities.DailyActivity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activity: make(map[activityKey]entities.DailyActivity)}
}

func (r *fakeActivityRepo) IncrementAnswered(_ context.Context, userID uuid.UUID, date time.Time, goal int) error {
	key := activityKey{userID, date}
	a, ok := r.activity[key]
	if !ok {
		a = entities.DailyActivity{UserID: userID, Date: date}
	}
	a.Answered++
	a.GoalMet = a.Answered >= goal
	r.activity[key] = a
	return nil
}

func (r *fakeActivityRepo) Get(_ context.Context, userID uuid.UUID, date time.Time) (*entities.DailyActivity, error) {
	a, ok := r.activity[activityKey{userID, date}]
	if !ok {
		return &entities.DailyActivity{UserID: userID, Date: date}, nil
	}
	copied := a
	return &copied, nil
}

func (r *fakeActivityRepo) GetRecent(_ context.Context, userID uuid.UUID, limit int) ([]entities.DailyActivity, error) {
	var out []entities.DailyActivity
	for key, a := range r.activity {
		if key.userID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeActivityRepo) LongestGoalStreak(_ context.Context, userID uuid.UUID) (int, error) {
	var dates []time.Time
	for key, a := range r.activity {
		if key.userID == userID && a.GoalMet {
			dates = append(dates, key.date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && d.Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest, nil
}
