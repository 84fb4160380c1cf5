package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

const mockProductsCSV = `Category,Name,TYPE,Range,Brand,Model,body_material,ip_rating,SIL,Protocol,Hazardous Classification,Voltage,technical_specs,img,Tag Number,Datasheet ,Inastaltions
Flame Detector,Flame Detector,IR4,IR:3-5 μm,Simin Gaman Aria/Iran,SFD-1000R-Y-Y,"Body Aluminum Die-cast Epoxy Coated",IP66,SIL 2,Conventional,"Ex d IIC, T6","18-30 VDC","Manufacturer: Simin Gaman Aria/Iran
Model: SFD-1000R
Ambient Temperature: -20 to +60 ᵒC",SFD-1000.jpg,Tag No.: FD-XXX,,
Smoke Detector,Smoke Detector,Optical,,Hochiki/Japan,SOC-E3N,ABS,IP42,,Conventional,,,"Manufacturer: Hochiki/Japan
Model: SOC-E3N
Ambient Temperature: -10 to +50 ᵒC",SOC-E3N.jpg,Tag No.: SD-XXX,,
Heat Detector,Heat Detector,Rate of Rise,"58 ᵒC",Hochiki/Japan,DFE-135,ABS,IP42,,Conventional,,,"Manufacturer: Hochiki/Japan
Model: DFE-135
Ambient Temperature: -10 to +50 ᵒC",DFE-135.jpg,Tag No.: HD-XXX,,
Gas Detector,Gas Detector,Catalytic,"0-100% LEL",Simin Gaman Aria/Iran,SGD-1000I-M-Y-Y,"Body Aluminum Die-cast Epoxy Coated",IP66,SIL 2,"4-20 mA","Ex d IIC, T6","18-30 VDC","Manufacturer: Simin Gaman Aria/Iran
Model: SGD-1000I
Ambient Temperature: -20 to +60 ᵒC",SGD-1000I.jpg,Tag No.: GD-XXX,,
Manual Call Point,Manual Call Point,Push Button,,Simin Gaman Aria/Iran,SGA-1000I,"Body Aluminum Die-cast Epoxy Coated",IP66,,Conventional,"Ex d IIC, T6","18-30 VDC","Manufacturer: Simin Gaman Aria/Iran
Model: SGA-1000I
Ambient Temperature: -20 to +60 ᵒC",SGA-1000I.jpg,Tag No.: MCP-XXX,,
Sounder,Sounder,Electronic,,Simin Gaman Aria/Iran,SGA-2000S,"Body Aluminum Die-cast Epoxy Coated",IP66,,Conventional,"Ex d IIC, T6","18-30 VDC","Manufacturer: Simin Gaman Aria/Iran
Model: SGA-2000S
Ambient Temperature: -20 to +60 ᵒC",SGA-2000S.jpg,Tag No.: SO-XXX,,
Strobe,Strobe Light,Xenon,,Simin Gaman Aria/Iran,SGA-2000F,"Body Aluminum Die-cast Epoxy Coated",IP66,,Conventional,"Ex d IIC, T6","18-30 VDC","Manufacturer: Simin Gaman Aria/Iran
Model: SGA-2000F
Ambient Temperature: -20 to +60 ᵒC",SGA-2000F.jpg,Tag No.: ST-XXX,,
`

func demoRevisions(revNos ...string) []entity.Revision {
	revs := make([]entity.Revision, len(revNos))
	for i, n := range revNos {
		revs[i] = entity.Revision{RevNo: n, Devices: []entity.Device{}}
	}
	return revs
}

func demoProjects() []entity.Project {
	return []entity.Project{
		{
			ID: "proj_1", ProjectName: "City Center Tower", ProjectNo: "SGA-001-2025", ClientID: "client_1",
			LastRev: "01", PreparedBy: "John Doe", Date: "2025-09-15", Status: entity.ProjectStatusSubmitted,
			Revisions: demoRevisions("00", "01"),
		},
		{
			ID: "proj_2", ProjectName: "Coastal Refinery", ProjectNo: "SGA-002-2025", ClientID: "client_2",
			LastRev: "00", PreparedBy: "Jane Smith", Date: "2025-09-22", Status: entity.ProjectStatusDraft,
			Revisions: demoRevisions("00"),
		},
		{
			ID: "proj_3", ProjectName: "National Airport Expansion", ProjectNo: "SGA-003-2025", ClientID: "client_1",
			LastRev: "02", PreparedBy: "John Doe", Date: "2025-08-01", Status: entity.ProjectStatusWin,
			Revisions: demoRevisions("00", "01", "02"),
		},
	}
}

var demoClients = []entity.Client{
	{ID: "client_1", Name: "Metro Development Group", Address: "12 Central Avenue", ContactNumber: "+1 555 0100"},
	{ID: "client_2", Name: "Coastal Petrochemical Co.", Address: "Harbour Road 4", ContactNumber: "+1 555 0199"},
}

// Seeder fills collections that were never written with demo data.
type Seeder struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

func NewSeeder(repos *repository.Repositories, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{repos: repos, logger: logger}
}

// Seed writes the mock catalog, demo clients and demo projects. A collection that already
// exists is left alone, even when it is empty.
func (s *Seeder) Seed(ctx context.Context) error {
	if err := s.seedOnce(ctx, repository.CollectionProducts, func() error {
		products, err := MockProducts()
		if err != nil {
			return err
		}
		for i := range products {
			products[i].ID = s.repos.Product.NewID()
		}
		return s.repos.Product.SaveAll(ctx, products)
	}); err != nil {
		return err
	}

	if err := s.seedOnce(ctx, repository.CollectionClients, func() error {
		clients := make([]entity.Client, len(demoClients))
		copy(clients, demoClients)
		return s.repos.Client.SaveAll(ctx, clients)
	}); err != nil {
		return err
	}

	return s.seedOnce(ctx, repository.CollectionProjects, func() error {
		return s.repos.Project.SaveAll(ctx, demoProjects())
	})
}

func (s *Seeder) seedOnce(ctx context.Context, collection string, write func() error) error {
	exists, err := s.repos.Store.Exists(ctx, collection)
	if err != nil {
		return fmt.Errorf("check %s: %w", collection, err)
	}
	if exists {
		return nil
	}
	if err := write(); err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	s.logger.Info("Seeded collection", zap.String("collection", collection))
	return nil
}

// MockProducts parses the built-in product catalog. Ids are left empty.
func MockProducts() ([]entity.Product, error) {
	rows, err := readCSV(strings.NewReader(mockProductsCSV))
	if err != nil {
		return nil, err
	}
	products, _ := mapRows(&Table{Header: rows[0], Rows: rows[1:]}, productFields, []string{"name"}, productFromRecord)
	return products, nil
}
