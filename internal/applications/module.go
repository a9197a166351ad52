// Package applications provides the application pipeline bounded context:
// derived board/list/summary views, contact links, and validated status
// mutations proxied to the core backend.
package applications

import (
	"casaora_backend/internal/applications/handler"
	"casaora_backend/internal/applications/service"
	"casaora_backend/internal/events"
	apphttp "casaora_backend/internal/http"
	"casaora_backend/internal/upstream"
	"casaora_backend/platform/config"
	"casaora_backend/platform/logger"
	"casaora_backend/platform/validator"
)

// Module is the applications bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the applications module.
func NewModule(api service.CoreAPI, cache *upstream.ListCache, bus events.Bus, cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(api, cache, bus, cfg, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "applications"
}

// Service exposes the pipeline service for the scheduler and notification
// wiring.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the module's routes; everything requires auth.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/applications"))
	m.handler.RegisterMemberRoutes(ctx.Protected.Group("/organizations"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
