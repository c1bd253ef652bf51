package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/Ardenexal/imaging-request/internal/app/config"
	"github.com/Ardenexal/imaging-request/internal/app/contracts"
	"github.com/Ardenexal/imaging-request/internal/pkg/constvars"
	"github.com/Ardenexal/imaging-request/internal/pkg/utils"
	"go.uber.org/zap"
)

type HealthController struct {
	Log             *zap.Logger
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewHealthController(logger *zap.Logger, redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{
		Log:             logger,
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := ctrl.RedisRepository.Ping(ctx); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, utils.GetRequestID(r.Context()), ctrl.InternalConfig.App.Env, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
		"version": ctrl.InternalConfig.App.Version,
	})
}
