package service

import (
	"context"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
)

func TestCreateProjectDefaults(t *testing.T) {
	ts := newTestServices(t)
	ts.Project.today = func() string { return "2025-10-01" }

	p, err := ts.Project.Create(context.Background(), &ProjectInput{ProjectName: "Tower", ProjectNo: "T-1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.LastRev != "00" || len(p.Revisions) != 1 || p.Revisions[0].RevNo != "00" {
		t.Errorf("Expected single revision 00, got %+v", p.Revisions)
	}
	if p.Status != entity.ProjectStatusDraft || p.Date != "2025-10-01" {
		t.Errorf("Unexpected defaults status=%s date=%s", p.Status, p.Date)
	}
	if p.Revisions[0].Devices == nil || p.GeneralDeviations == nil || p.UploadedFiles == nil {
		t.Error("Lists must be empty, not nil")
	}
}

func TestCreateProjectValidation(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	_, err := ts.Project.Create(ctx, &ProjectInput{ProjectName: " ", ProjectNo: "X"})
	mustInvalid(t, err)
	_, err = ts.Project.Create(ctx, &ProjectInput{ProjectName: "A", ProjectNo: "X", Status: "Lost"})
	mustInvalid(t, err)
	_, err = ts.Project.Create(ctx, &ProjectInput{ProjectName: "A", ProjectNo: "X", ClientID: "client_9"})
	mustNotFound(t, err)
}

func TestProjectListFilters(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	client, err := ts.Client.Create(ctx, entity.Client{Name: "Metro"})
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	for _, in := range []ProjectInput{
		{ProjectName: "City Tower", ProjectNo: "SGA-1", ClientID: client.ID, Status: entity.ProjectStatusWin},
		{ProjectName: "Refinery", ProjectNo: "SGA-2"},
		{ProjectName: "Airport", ProjectNo: "SGA-3", ClientID: client.ID},
	} {
		in := in
		if _, err := ts.Project.Create(ctx, &in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cases := []struct {
		filter ProjectFilter
		want   int
	}{
		{ProjectFilter{}, 3},
		{ProjectFilter{Status: entity.ProjectStatusWin}, 1},
		{ProjectFilter{ClientID: client.ID}, 2},
		{ProjectFilter{Query: "sga-2"}, 1},
		{ProjectFilter{Query: "tower", ClientID: client.ID}, 1},
	}
	for _, tc := range cases {
		got, err := ts.Project.List(ctx, tc.filter)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != tc.want {
			t.Errorf("filter %+v: expected %d, got %d", tc.filter, tc.want, len(got))
		}
	}
}

func TestUpdateProjectKeepsRevisions(t *testing.T) {
	ts := newTestServices(t)
	ts.seedProject(t, projectWithDevice("P", entity.Device{ID: "A", QtyMain: 3}))

	p, err := ts.Project.Update(context.Background(), "P", &ProjectInput{
		ProjectName: "Renamed", ProjectNo: "N-1", Status: entity.ProjectStatusSubmitted,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.ProjectName != "Renamed" || len(p.Revisions[0].Devices) != 1 {
		t.Errorf("Unexpected project %+v", p)
	}
}

func TestDeleteProjectRemovesSpareParts(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	ts.seedProject(t, projectWithDevice("P", entity.Device{ID: "A", QtyMain: 1}))

	if _, err := ts.SparePart.Add(ctx, "P", entity.SparePartTwoYear, "John Doe", "Spare heads"); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if err := ts.Project.Delete(ctx, "P"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if raw := ts.store.Raw(entity.SparePartCollection("P", entity.SparePartTwoYear)); raw != nil {
		t.Errorf("Expected spare part notes removed, found %s", raw)
	}
	_, err := ts.Project.Get(ctx, "P")
	mustNotFound(t, err)
	mustNotFound(t, ts.Project.Delete(ctx, "P"))
}
