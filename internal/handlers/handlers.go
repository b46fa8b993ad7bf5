package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/futscout/futscout/internal/logic"
)

type Config struct {
	Store   logic.PoolStore
	Compare logic.CompareService
	Logger  *zap.Logger
}

type Handler struct {
	store     logic.PoolStore
	compare   logic.CompareService
	logger    *zap.SugaredLogger
	validator *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		store:     cfg.Store,
		compare:   cfg.Compare,
		logger:    cfg.Logger.Sugar(),
		validator: validator.New(),
	}
}
