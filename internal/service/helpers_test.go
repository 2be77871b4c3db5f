package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/repository"
	"github.com/alexanderramin/repcoach/internal/testutil"
)

type testRepos struct {
	db       *sql.DB
	records  *repository.SQLiteExerciseRepo
	profiles *repository.SQLiteProfileRepo
	chats    *repository.SQLiteChatRepo
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		records:  repository.NewSQLiteExerciseRepo(database),
		profiles: repository.NewSQLiteProfileRepo(database),
		chats:    repository.NewSQLiteChatRepo(database),
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// fakeCoach answers every chat with reply or err and records requests.
type fakeCoach struct {
	mu       sync.Mutex
	reply    string
	err      error
	requests []coach.ChatRequest
}

func (f *fakeCoach) Chat(_ context.Context, req coach.ChatRequest) (*coach.ChatResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.reply == "" {
		return &coach.ChatResponse{Text: coach.NoResponseText, Empty: true}, nil
	}
	return &coach.ChatResponse{Text: f.reply}, nil
}

func (f *fakeCoach) Available(context.Context) bool { return f.err == nil }

func (f *fakeCoach) lastRequest() coach.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}
