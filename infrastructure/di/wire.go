//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"journaline/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideDispatcher,
	ProvideEventPublisher,
	ProvideEventRepository,
	ProvideTimelineRepository,
	ProvideEventService,
	ProvideTimelineService,
	ProvideAssociationService,
	ProvideForkService,
	ProvideViewService,
	ProvideImportService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
