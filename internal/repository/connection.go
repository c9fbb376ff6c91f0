package repository

import (
	"context"
	"errors"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection-edge operations.
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetBetween(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Connection, error)
	Accept(ctx context.Context, accepterID, inviterID uuid.UUID) error
	GetConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	GetPendingInvites(ctx context.Context, userID uuid.UUID) ([]models.Connection, error)
	Remove(ctx context.Context, userID1, userID2 uuid.UUID) error
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetBetween finds the edge between two users in whichever direction it
// exists. Returns (nil, nil) when no edge exists.
func (r *connectionRepository) GetBetween(ctx context.Context, userID1, userID2 uuid.UUID) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Where("(requestor_id = ? AND target_id = ?) OR (requestor_id = ? AND target_id = ?)",
			userID1, userID2, userID2, userID1).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

// Accept marks the edge inviter->accepter as accepted. Only the edge where
// the accepter is the target qualifies.
func (r *connectionRepository) Accept(ctx context.Context, accepterID, inviterID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("requestor_id = ? AND target_id = ? AND accepted = ?", inviterID, accepterID, false).
		Update("accepted", true)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Connection invite", inviterID)
	}
	return nil
}

// GetConnectedIDs returns the IDs of every user joined to userID by an
// accepted edge, in either direction. userID itself is never included.
func (r *connectionRepository) GetConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("accepted = ? AND (requestor_id = ? OR target_id = ?)", true, userID, userID).
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	ids := make([]uuid.UUID, 0, len(conns))
	for _, conn := range conns {
		other := conn.RequestorID
		if other == userID {
			other = conn.TargetID
		}
		if other != userID {
			ids = append(ids, other)
		}
	}
	return ids, nil
}

// GetPendingInvites returns unaccepted edges where userID is the target,
// with the requestor loaded so the caller can present who is asking.
func (r *connectionRepository) GetPendingInvites(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("target_id = ? AND accepted = ?", userID, false).
		Preload("Requestor").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

func (r *connectionRepository) Remove(ctx context.Context, userID1, userID2 uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("(requestor_id = ? AND target_id = ?) OR (requestor_id = ? AND target_id = ?)",
			userID1, userID2, userID2, userID1).
		Delete(&models.Connection{})
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Connection", userID2)
	}
	return nil
}
