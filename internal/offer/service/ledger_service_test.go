package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
)

func TestGeneralDeviationLedger(t *testing.T) {
	ts := newTestServices(t)
	ts.Ledger.today = func() string { return "2025-10-02" }
	ts.seedProject(t, projectWithDevice("P", entity.Device{ID: "A", QtyMain: 1}))
	ctx := context.Background()

	if _, err := ts.Ledger.AddGeneralDeviation(ctx, "P", GeneralDeviationInput{Author: "John Doe", Deviation: "Power by client"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := ts.Ledger.AddGeneralDeviation(ctx, "P", GeneralDeviationInput{Author: "Jane Smith", Date: "2025-09-01", Deviation: "No scaffolding"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	items, err := ts.Ledger.ListGeneralDeviations(ctx, "P")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].Date != "2025-10-02" || items[1].Author != "Jane Smith" {
		t.Errorf("Unexpected ledger %+v", items)
	}

	// revisions are untouched by ledger writes
	if n := len(ts.device(t, "P", "00", "A").Deviations); n != 0 {
		t.Errorf("Device deviations changed: %d", n)
	}

	_, err = ts.Ledger.AddGeneralDeviation(ctx, "P", GeneralDeviationInput{Deviation: "  "})
	mustInvalid(t, err)
	_, err = ts.Ledger.AddGeneralDeviation(ctx, "missing", GeneralDeviationInput{Deviation: "x"})
	mustNotFound(t, err)
}

func TestUploadedFileRoundTrip(t *testing.T) {
	ts := newTestServices(t)
	ts.seedProject(t, projectWithDevice("P", entity.Device{ID: "A", QtyMain: 1}))
	ctx := context.Background()

	p, err := ts.Ledger.AddUploadedFile(ctx, "P", UploadInput{
		Name: "Client Requirements.PDF", UploadedBy: "John Doe", Size: 5, ContentType: "application/pdf",
	}, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(p.UploadedFiles) != 1 {
		t.Fatalf("Expected 1 file, got %d", len(p.UploadedFiles))
	}
	rec := p.UploadedFiles[0]
	if !strings.HasPrefix(rec.URL, "projects/P/") || !strings.HasSuffix(rec.URL, ".pdf") {
		t.Errorf("Unexpected object key %q", rec.URL)
	}

	got, rc, err := ts.Ledger.OpenUploadedFile(ctx, "P", rec.ID)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "hello" || got.Name != "Client Requirements.PDF" {
		t.Errorf("Unexpected content %q for %s", data, got.Name)
	}

	_, _, err = ts.Ledger.OpenUploadedFile(ctx, "P", "nope")
	mustNotFound(t, err)
	_, err = ts.Ledger.AddUploadedFile(ctx, "missing", UploadInput{Name: "a.txt"}, strings.NewReader("x"))
	mustNotFound(t, err)
	_, err = ts.Ledger.AddUploadedFile(ctx, "P", UploadInput{}, strings.NewReader("x"))
	mustInvalid(t, err)
}
