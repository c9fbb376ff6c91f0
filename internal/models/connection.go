package models

import (
	"time"

	"github.com/google/uuid"
)

// Connection is a directed invite edge between two users. An edge with
// Accepted=false is a pending invite and confers no recipe visibility;
// once accepted, visibility applies in both directions regardless of who
// sent the invite. Direction is kept so the route layer can distinguish
// "send new invite" from "accept the one waiting for me".
type Connection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequestorID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"requestorUuId"`
	TargetID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_connection_pair" json:"targetUuId"`
	Accepted    bool      `gorm:"not null;default:false" json:"accepted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Requestor *User `gorm:"foreignKey:RequestorID" json:"requestor,omitempty"`
	Target    *User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// TableName specifies the table name for GORM
func (Connection) TableName() string {
	return "user_user_joins"
}
