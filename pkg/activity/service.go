package activity

import (
	"context"
	"fmt"

	"github.com/gestio-app/gestio/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Record(ctx context.Context, action, entityType string, entityId int, description string)
	GetRecent(ctx context.Context, limit int) ([]Activity, error)
}

type ServiceImpl struct {
	repository Repository
}

func NewService(repository Repository) *ServiceImpl {
	return &ServiceImpl{repository: repository}
}

// Record appends an audit line. The trail is best effort: a failure is
// logged but never propagated to the caller's mutation.
func (s *ServiceImpl) Record(ctx context.Context, action, entityType string, entityId int, description string) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		log.Warnf("skipping activity record, no user in context: %v", err)
		return
	}
	_, err = s.repository.Create(ctx, Activity{
		UserId:      userId,
		Action:      action,
		EntityType:  entityType,
		EntityId:    entityId,
		Description: description,
	})
	if err != nil {
		log.Warnf("failed to record activity: %v", err)
	}
}

func (s *ServiceImpl) GetRecent(ctx context.Context, limit int) ([]Activity, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repository.GetRecent(ctx, userId, limit)
}
