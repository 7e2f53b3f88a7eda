package service

import (
	"context"

	"go.uber.org/zap"
)

// ChatService answers messages sent to the chat endpoint.
type ChatService interface {
	// Chat returns the reply text. Empty messages fail with assistant.ErrMessageRequired.
	Chat(ctx context.Context, message string) (string, error)
}

type chatService struct {
	responder Responder
	log       *zap.Logger
}

func NewChatService(r Responder, log *zap.Logger) ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	return &chatService{responder: r, log: log.With(zap.String("component", "chat_service"))}
}

func (s *chatService) Chat(ctx context.Context, message string) (string, error) {
	reply, err := s.responder.Reply(ctx, message)
	if err != nil {
		return "", err
	}
	s.log.Debug("chat reply", zap.String("source", string(reply.Source)), zap.Int("length", len(reply.Text)))
	return reply.Text, nil
}
