package handlers

import (
	"context"

	telebot "gopkg.in/telebot.v3"

	"docusmith/internal/permissions"
)

// MessageHandler defines the interface for handling Telegram updates
type MessageHandler interface {
	Handle(ctx context.Context, c telebot.Context) error
	CanHandle(accessType permissions.AccessType) bool
}

// HandlerFactory creates message handlers
type HandlerFactory struct {
	deps Deps
}

// NewHandlerFactory creates a new handler factory
func NewHandlerFactory(deps Deps) *HandlerFactory {
	return &HandlerFactory{deps: deps}
}

// CreateHandler creates a message handler for the given access type
func (f *HandlerFactory) CreateHandler(accessType permissions.AccessType) MessageHandler {
	switch accessType {
	case permissions.Master:
		return NewMasterHandler(f.deps)
	default:
		return NewUserHandler(f.deps)
	}
}
