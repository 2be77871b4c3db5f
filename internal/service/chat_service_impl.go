package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/repcoach/internal/coach"
	"github.com/alexanderramin/repcoach/internal/db"
	"github.com/alexanderramin/repcoach/internal/domain"
	"github.com/alexanderramin/repcoach/internal/repository"
	"github.com/google/uuid"
)

// DefaultChatHistory is how many past exchanges are loaded with the chat.
const DefaultChatHistory = 10

type chatService struct {
	chats    repository.ChatRepo
	coach    coach.Client
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewChatService(chats repository.ChatRepo, client coach.Client, uow db.UnitOfWork, observers ...UseCaseObserver) ChatService {
	return &chatService{
		chats:    chats,
		coach:    client,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

// NewSessionID formats a conversation id for the coach.
func NewSessionID(userID string, at time.Time) string {
	return fmt.Sprintf("session-%s-%d", userID, at.UnixMilli())
}

func (s *chatService) SessionID(ctx context.Context, userID string) (string, error) {
	sid, err := s.chats.GetSessionID(ctx, userID)
	if err == nil {
		return sid, nil
	}
	if !isNotFound(err) {
		return "", err
	}

	now := s.now().UTC()
	if err := s.chats.PutSessionID(ctx, userID, NewSessionID(userID, now), now); err != nil {
		return "", err
	}
	// another writer may have stored its id first
	return s.chats.GetSessionID(ctx, userID)
}

// Send asks the coach and stores the exchange. Nothing is stored when the
// coach call fails.
func (s *chatService) Send(ctx context.Context, userID, message string) (msg *domain.ChatMessage, err error) {
	fields := map[string]any{"user_id": userID}
	done := observe(ctx, s.observer, "chat-send", fields)
	defer func() { done(err) }()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	sid, err := s.SessionID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving chat session: %w", err)
	}
	fields["session_id"] = sid

	reply, err := s.coach.Chat(ctx, coach.ChatRequest{Task: coach.TaskChat, Message: message, SessionID: sid})
	if err != nil {
		return nil, fmt.Errorf("asking coach: %w", err)
	}
	fields["empty_reply"] = reply.Empty

	msg = &domain.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sid,
		Message:   message,
		Response:  reply.Text,
		CreatedAt: s.now().UTC(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txChats := repository.NewSQLiteChatRepo(tx)
		if err := txChats.PutSessionID(ctx, userID, sid, msg.CreatedAt); err != nil {
			return err
		}
		return txChats.Create(ctx, msg)
	})
	if err != nil {
		return nil, fmt.Errorf("saving chat message: %w", err)
	}
	return msg, nil
}

func (s *chatService) History(ctx context.Context, userID string, limit int) ([]*domain.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultChatHistory
	}
	return s.chats.ListRecent(ctx, userID, limit)
}
