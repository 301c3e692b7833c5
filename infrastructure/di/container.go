// Package di assembles the application with google/wire. Run
// `wire ./infrastructure/di` after changing providers to regenerate
// wire_gen.go.
package di

import (
	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/application/services"
	"journaline/infrastructure/config"
	"journaline/infrastructure/messaging"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *zap.Logger
	Dispatcher         *messaging.Dispatcher
	EventRepo          ports.EventRepository
	TimelineRepo       ports.TimelineRepository
	Publisher          ports.EventPublisher
	EventService       *services.EventService
	TimelineService    *services.TimelineService
	AssociationService *services.AssociationService
	ForkService        *services.ForkService
	ViewService        *services.ViewService
	ImportService      *services.ImportService
}
