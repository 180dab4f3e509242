package service

import (
	"context"
	"time"

	"github.com/Marga-Ghale/bpo-console/internal/models"
	"github.com/Marga-Ghale/bpo-console/internal/repository"
)

// ============================================
// Activity Service
// ============================================

// ActivityService defines activity log operations
type ActivityService interface {
	LogActivity(ctx context.Context, activityType, entityType, entityID, userID string, changes map[string]interface{}) error
	GetEntityActivities(ctx context.Context, entityType, entityID string, limit int) ([]models.ActivityResponse, error)
	GetUserActivities(ctx context.Context, userID string, limit int) ([]models.ActivityResponse, error)
	PurgeOlderThan(ctx context.Context, age time.Duration) (int, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) LogActivity(ctx context.Context, activityType, entityType, entityID, userID string, changes map[string]interface{}) error {
	return s.activityRepo.Create(ctx, &repository.Activity{
		Type:       activityType,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     userID,
		Changes:    changes,
	})
}

func (s *activityService) GetEntityActivities(ctx context.Context, entityType, entityID string, limit int) ([]models.ActivityResponse, error) {
	activities, err := s.activityRepo.FindByEntity(ctx, entityType, entityID, limit)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func (s *activityService) GetUserActivities(ctx context.Context, userID string, limit int) ([]models.ActivityResponse, error) {
	activities, err := s.activityRepo.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	return toActivityResponses(activities), nil
}

func (s *activityService) PurgeOlderThan(ctx context.Context, age time.Duration) (int, error) {
	return s.activityRepo.DeleteOlderThan(ctx, time.Now().Add(-age))
}

func toActivityResponses(activities []*repository.Activity) []models.ActivityResponse {
	out := make([]models.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, models.ActivityResponse{
			ID:         a.ID,
			Type:       a.Type,
			EntityType: a.EntityType,
			EntityID:   a.EntityID,
			UserID:     a.UserID,
			Changes:    a.Changes,
			CreatedAt:  a.CreatedAt,
		})
	}
	return out
}
