package session

import (
	"context"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/app/models"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/dto/requests"
	"github.com/Ardenexal/imaging-request/internal/pkg/exceptions"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	SessionConfig   config.Session
	Log             *zap.Logger
}

func NewSessionService(redisRepository contracts.RedisRepository, sessionConfig config.Session, logger *zap.Logger) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		SessionConfig:   sessionConfig,
		Log:             logger,
	}
}

func (svc *sessionService) InitializeSession(ctx context.Context, request *requests.InitializeSession) (string, *models.Session, error) {
	requestID := utils.GetRequestID(ctx)

	if err := utils.ValidateStruct(request); err != nil {
		return "", nil, exceptions.ErrInputValidation(err)
	}

	session := &models.Session{
		SessionID:            utils.GenerateSessionID(),
		PatientID:            request.PatientID,
		PractitionerID:       request.PractitionerID,
		PractitionerRoleID:   request.PractitionerRoleID,
		PlacerOrganizationID: request.PlacerOrganizationID,
		FillerOrganizationID: request.FillerOrganizationID,
		CreatedAt:            time.Now().UTC(),
	}

	ttl := svc.ttl()
	err := svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
	if err != nil {
		svc.Log.Error("sessionService.InitializeSession error storing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return "", nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, svc.SessionConfig.JWTSecret, ttl)
	if err != nil {
		return "", nil, exceptions.ErrTokenGenerate(err)
	}

	svc.Log.Info("sessionService.InitializeSession succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
		zap.String(constvars.LoggingPatientIDKey, session.PatientID),
	)
	return token, session, nil
}

func (svc *sessionService) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := utils.ParseSessionJWT(token, svc.SessionConfig.JWTSecret)
	if err != nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	sessionData, err := svc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return nil, err
	}
	if sessionData == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	session := new(models.Session)
	if err := json.Unmarshal([]byte(sessionData), session); err != nil {
		return nil, exceptions.ErrParseSessionData(err)
	}
	return session, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}

func (svc *sessionService) ttl() time.Duration {
	return time.Duration(svc.SessionConfig.ExpTimeInHour) * time.Hour
}

func sessionKey(sessionID string) string {
	return constvars.SessionKeyPrefix + sessionID
}
