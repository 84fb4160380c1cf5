package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/storage"
)

type recordedEvent struct {
	projectID string
	action    string
}

type recordingPublisher struct {
	events []recordedEvent
}

func (p *recordingPublisher) PublishProjectUpdate(projectID, action string) {
	p.events = append(p.events, recordedEvent{projectID, action})
}

type testServices struct {
	*Services
	store  *repository.MemoryStore
	repos  *repository.Repositories
	events *recordingPublisher
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	store := repository.NewMemoryStore()
	repos := repository.NewRepositories(store)
	blobs, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create blob store: %v", err)
	}
	events := &recordingPublisher{}
	svc := NewServices(Deps{Repos: repos, Blobs: blobs, Events: events})
	return &testServices{Services: svc, store: store, repos: repos, events: events}
}

// seedProject stores p directly, bypassing Create.
func (ts *testServices) seedProject(t *testing.T, p entity.Project) {
	t.Helper()
	projects, err := ts.repos.Project.List(context.Background())
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if err := ts.repos.Project.SaveAll(context.Background(), append(projects, p)); err != nil {
		t.Fatalf("seed project: %v", err)
	}
}

func (ts *testServices) device(t *testing.T, projectID, revNo, deviceID string) entity.Device {
	t.Helper()
	_, rev, err := ts.Revision.GetRevision(context.Background(), projectID, revNo)
	if err != nil {
		t.Fatalf("get revision %s: %v", revNo, err)
	}
	i := rev.DeviceIndex(deviceID)
	if i < 0 {
		t.Fatalf("device %s not in revision %s", deviceID, revNo)
	}
	return rev.Devices[i]
}

func mustNotFound(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func mustInvalid(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected ErrValidation, got %v", err)
	}
}
