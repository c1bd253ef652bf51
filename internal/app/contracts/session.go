package contracts

import (
	"context"

	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
)

type SessionService interface {
	// InitializeSession stores the chosen identifiers and returns the signed token
	// the client keeps in its session cookie.
	InitializeSession(ctx context.Context, request *requests.InitializeSession) (token string, session *models.Session, err error)
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
