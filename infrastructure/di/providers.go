package di

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/application/services"
	"journaline/infrastructure/config"
	"journaline/infrastructure/messaging"
	"journaline/infrastructure/messaging/eventbridge"
	dynamorepo "journaline/infrastructure/persistence/dynamodb"
	memoryrepo "journaline/infrastructure/persistence/memory"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideDispatcher creates the in-process event dispatcher
func ProvideDispatcher(logger *zap.Logger) *messaging.Dispatcher {
	return messaging.NewDispatcher(logger)
}

// ProvideEventPublisher wires the publisher services broadcast through.
// The in-process dispatcher is always in the chain; EventBridge is added
// behind its feature flag.
func ProvideEventPublisher(
	cfg *config.Config,
	dispatcher *messaging.Dispatcher,
	client *awseventbridge.Client,
	logger *zap.Logger,
) ports.EventPublisher {
	if cfg.EnableEventBridge {
		return messaging.NewCompositePublisher(
			dispatcher,
			eventbridge.NewPublisher(client, cfg.EventBusName, logger),
		)
	}
	return dispatcher
}

// ProvideEventRepository creates an event repository for the configured backend
func ProvideEventRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.EventRepository {
	if cfg.StorageBackend == "memory" {
		return memoryrepo.NewEventRepository()
	}
	return dynamorepo.NewEventRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideTimelineRepository creates a timeline repository for the configured backend
func ProvideTimelineRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.TimelineRepository {
	if cfg.StorageBackend == "memory" {
		return memoryrepo.NewTimelineRepository()
	}
	return dynamorepo.NewTimelineRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventService creates the journal event service
func ProvideEventService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.EventService {
	return services.NewEventService(events, timelines, publisher, logger)
}

// ProvideTimelineService creates the timeline service
func ProvideTimelineService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.TimelineService {
	return services.NewTimelineService(events, timelines, publisher, logger)
}

// ProvideAssociationService creates the membership service
func ProvideAssociationService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.AssociationService {
	return services.NewAssociationService(events, timelines, publisher, logger)
}

// ProvideForkService creates the timeline fork service
func ProvideForkService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.ForkService {
	return services.NewForkService(events, timelines, publisher, logger)
}

// ProvideViewService creates the grouped-view service
func ProvideViewService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	logger *zap.Logger,
) *services.ViewService {
	return services.NewViewService(events, timelines, logger)
}

// ProvideImportService creates the legacy import service
func ProvideImportService(eventService *services.EventService, logger *zap.Logger) *services.ImportService {
	return services.NewImportService(eventService, logger)
}
