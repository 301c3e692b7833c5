package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"journaline/application/services"
	"journaline/domain/events"
	"journaline/infrastructure/persistence/memory"
)

// recordingPublisher captures every published event for assertions
type recordingPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, event)
	return nil
}

func (p *recordingPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, batch...)
	return nil
}

func (p *recordingPublisher) byType(eventType string) []events.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.DomainEvent
	for _, e := range p.published {
		if e.GetEventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// testEnv bundles the in-memory backed services used across service tests
type testEnv struct {
	events      *memory.EventRepository
	timelines   *memory.TimelineRepository
	publisher   *recordingPublisher
	eventSvc    *services.EventService
	timelineSvc *services.TimelineService
	assocSvc    *services.AssociationService
	forkSvc     *services.ForkService
	viewSvc     *services.ViewService
	importSvc   *services.ImportService
}

func newTestEnv() *testEnv {
	eventRepo := memory.NewEventRepository()
	timelineRepo := memory.NewTimelineRepository()
	publisher := &recordingPublisher{}
	logger := zap.NewNop()

	eventSvc := services.NewEventService(eventRepo, timelineRepo, publisher, logger)

	return &testEnv{
		events:      eventRepo,
		timelines:   timelineRepo,
		publisher:   publisher,
		eventSvc:    eventSvc,
		timelineSvc: services.NewTimelineService(eventRepo, timelineRepo, publisher, logger),
		assocSvc:    services.NewAssociationService(eventRepo, timelineRepo, publisher, logger),
		forkSvc:     services.NewForkService(eventRepo, timelineRepo, publisher, logger),
		viewSvc:     services.NewViewService(eventRepo, timelineRepo, logger),
		importSvc:   services.NewImportService(eventSvc, logger),
	}
}

func (env *testEnv) mustCreateEvent(t *testing.T, title string, date time.Time, timelineIDs ...string) string {
	t.Helper()
	event, err := env.eventSvc.Create(context.Background(), services.CreateEventInput{
		Title:       title,
		Description: title + " description",
		Date:        date,
		TimelineIDs: timelineIDs,
	})
	require.NoError(t, err)
	return event.ID().String()
}

func (env *testEnv) mustCreateTimeline(t *testing.T, name string) string {
	t.Helper()
	timeline, err := env.timelineSvc.Create(context.Background(), services.CreateTimelineInput{
		Name: name,
	})
	require.NoError(t, err)
	return timeline.ID().String()
}

func updateName(name string) services.UpdateTimelineInput {
	return services.UpdateTimelineInput{Name: &name}
}

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
