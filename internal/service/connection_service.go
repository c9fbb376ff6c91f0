package service

import (
	"context"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/repository"

	"github.com/google/uuid"
)

// Connection outcome messages returned to the client.
const (
	MsgInviteSent     = "invite sent"
	MsgInviteAccepted = "invite accepted"
)

// ConnectionService contains business logic for the friendship graph.
// A single operation covers both inviting and accepting: which one happens
// is decided by the current state of the edge between the two users.
type ConnectionService struct {
	connectionRepo repository.ConnectionRepository
	userRepo       repository.UserRepository
}

// NewConnectionService creates a new connection service
func NewConnectionService(connectionRepo repository.ConnectionRepository, userRepo repository.UserRepository) *ConnectionService {
	return &ConnectionService{connectionRepo: connectionRepo, userRepo: userRepo}
}

// Connect advances the edge between requestor and target one step:
// no edge creates a pending invite, a pending invite addressed to the
// requestor is accepted, anything else is rejected. Self-connections are
// never allowed.
func (s *ConnectionService) Connect(ctx context.Context, requestorID, targetID uuid.UUID) (string, error) {
	if requestorID == targetID {
		return "", models.NewValidationError("Cannot connect a user to themselves")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return "", err
	}

	existing, err := s.connectionRepo.GetBetween(ctx, requestorID, targetID)
	if err != nil {
		return "", err
	}
	if existing == nil {
		conn := &models.Connection{RequestorID: requestorID, TargetID: targetID}
		if err := s.connectionRepo.Create(ctx, conn); err != nil {
			return "", err
		}
		return MsgInviteSent, nil
	}
	if !existing.Accepted && existing.TargetID == requestorID {
		if err := s.connectionRepo.Accept(ctx, requestorID, existing.RequestorID); err != nil {
			return "", err
		}
		return MsgInviteAccepted, nil
	}
	return "", models.NewValidationError("A connection request already exists")
}

// Disconnect removes the edge between the two users whether it was pending
// or accepted.
func (s *ConnectionService) Disconnect(ctx context.Context, userID, otherID uuid.UUID) error {
	return s.connectionRepo.Remove(ctx, userID, otherID)
}

// PendingInvites returns invites awaiting the user's acceptance, with the
// requestor loaded for display.
func (s *ConnectionService) PendingInvites(ctx context.Context, userID uuid.UUID) ([]models.Connection, error) {
	return s.connectionRepo.GetPendingInvites(ctx, userID)
}

// ConnectedIDs returns the set of user IDs with an accepted connection to
// the user, in either direction.
func (s *ConnectionService) ConnectedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.connectionRepo.GetConnectedIDs(ctx, userID)
}
