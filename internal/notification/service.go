// Package notification builds the toasts returned by console actions and
// pushes them to the user's open dashboard tabs.
package notification

import (
	"log"

	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/socket"
	"github.com/Marga-Ghale/bpo-console/internal/types"
)

// Lists the dashboard can be told to refetch
const (
	ListProjects = "projects"
	ListTasks    = "tasks"
	ListUsers    = "users"
)

// Service handles sending notifications
type Service struct {
	broadcaster *socket.Broadcaster
}

// NewService creates a notification service. A nil broadcaster only returns
// notifications without pushing them.
func NewService(b *socket.Broadcaster) *Service {
	return &Service{broadcaster: b}
}

func (s *Service) notify(userID, level, message string) *models.Notification {
	n := &models.Notification{Level: level, Message: message}
	if s.broadcaster != nil && userID != "" {
		s.broadcaster.SendToast(userID, level, message)
	}
	return n
}

func (s *Service) Success(userID, message string) *models.Notification {
	return s.notify(userID, types.LevelSuccess, message)
}

// Error also logs, so no failure reaches the user without a server-side record.
func (s *Service) Error(userID, message string) *models.Notification {
	log.Printf("⚠️ [Notify] user=%s: %s", userID, message)
	return s.notify(userID, types.LevelError, message)
}

func (s *Service) Info(userID, message string) *models.Notification {
	return s.notify(userID, types.LevelInfo, message)
}

// Reloaded announces that list was refetched after a mutation.
func (s *Service) Reloaded(userID, list, scope string) {
	if s.broadcaster != nil && userID != "" {
		s.broadcaster.ListReloaded(userID, list, scope)
	}
}
