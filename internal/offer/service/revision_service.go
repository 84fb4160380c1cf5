package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	Get(ctx context.Context, id string) (*entity.Product, error)
}

// ProductSelection picks a catalog product and the quantities to add.
type ProductSelection struct {
	ProductID string `json:"product_id" binding:"required"`
	QtyMain   int    `json:"qty_main"`
	QtySpare  int    `json:"qty_spare"`
}

// AccessorySelection picks an entry of the fixed accessory list.
type AccessorySelection struct {
	ID  string `json:"id" binding:"required"`
	Qty int    `json:"qty"`
}

// RevisionService owns every mutation of a project's revisions and their devices.
type RevisionService struct {
	writer   *projectWriter
	projects *repository.ProjectRepository
	catalog  ProductLookup
	events   EventPublisher
	logger   *zap.Logger
}

func NewRevisionService(projects *repository.ProjectRepository, catalog ProductLookup, locker repository.Locker, events EventPublisher, logger *zap.Logger) *RevisionService {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RevisionService{
		writer:   &projectWriter{repo: projects, locker: locker},
		projects: projects,
		catalog:  catalog,
		events:   events,
		logger:   logger,
	}
}

// DeviceFromProduct builds a device snapshotting every attribute of p.
func DeviceFromProduct(p entity.Product, qtyMain, qtySpare int) entity.Device {
	return entity.Device{
		ID:             p.ID,
		Name:           p.Name,
		Model:          p.Model,
		Brand:          p.Brand,
		QtyMain:        qtyMain,
		QtySpare:       qtySpare,
		ProductDetails: p,
	}
}

func validateDevice(d entity.Device) error {
	if strings.TrimSpace(d.ID) == "" {
		return invalid("device id is required")
	}
	if d.QtyMain < 0 || d.QtySpare < 0 {
		return invalid("device %s: quantities must not be negative", d.ID)
	}
	return nil
}

func findRevision(p *entity.Project, revNo string) (*entity.Revision, error) {
	i := p.RevisionIndex(revNo)
	if i < 0 {
		return nil, notFound("revision", revNo)
	}
	return &p.Revisions[i], nil
}

// GetRevision returns the project and one of its revisions.
func (s *RevisionService) GetRevision(ctx context.Context, projectID, revNo string) (*entity.Project, *entity.Revision, error) {
	p, ok, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return nil, nil, notFound("project", projectID)
	}
	rev, err := findRevision(p, revNo)
	if err != nil {
		return nil, nil, err
	}
	return p, rev, nil
}

// AddDevicesToRevision merges devices into a revision by id. A device whose id already exists
// only adds its quantities; every other field of the existing device is kept.
func (s *RevisionService) AddDevicesToRevision(ctx context.Context, projectID, revNo string, devices []entity.Device) (*entity.Project, error) {
	for _, d := range devices {
		if err := validateDevice(d); err != nil {
			return nil, err
		}
	}

	p, err := s.writer.update(ctx, projectID, func(p *entity.Project) error {
		rev, err := findRevision(p, revNo)
		if err != nil {
			return err
		}
		for _, d := range devices {
			if i := rev.DeviceIndex(d.ID); i >= 0 {
				rev.Devices[i].QtyMain += d.QtyMain
				rev.Devices[i].QtySpare += d.QtySpare
				continue
			}
			rev.Devices = append(rev.Devices, d.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Devices added to revision",
		zap.String("project_id", projectID),
		zap.String("rev_no", revNo),
		zap.Int("count", len(devices)),
	)
	s.events.PublishProjectUpdate(projectID, "devices_added")
	return p, nil
}

// AddProductsToRevision snapshots catalog products into devices and merges them into a revision.
// A selection with no quantities adds one main unit.
func (s *RevisionService) AddProductsToRevision(ctx context.Context, projectID, revNo string, selections []ProductSelection) (*entity.Project, error) {
	if len(selections) == 0 {
		return nil, invalid("no products selected")
	}

	devices := make([]entity.Device, 0, len(selections))
	for _, sel := range selections {
		product, err := s.catalog.Get(ctx, sel.ProductID)
		if err != nil {
			return nil, err
		}
		qtyMain, qtySpare := sel.QtyMain, sel.QtySpare
		if qtyMain == 0 && qtySpare == 0 {
			qtyMain = 1
		}
		devices = append(devices, DeviceFromProduct(*product, qtyMain, qtySpare))
	}
	return s.AddDevicesToRevision(ctx, projectID, revNo, devices)
}

// UpdateDeviceInRevision replaces the device with the same id. Nothing is merged.
func (s *RevisionService) UpdateDeviceInRevision(ctx context.Context, projectID, revNo string, device entity.Device) (*entity.Project, error) {
	if err := validateDevice(device); err != nil {
		return nil, err
	}
	return s.modifyDevice(ctx, projectID, revNo, device.ID, "device_updated", func(d *entity.Device) error {
		*d = device.Clone()
		return nil
	})
}

// AddDeviceDeviation appends a client/vendor deviation to a device.
func (s *RevisionService) AddDeviceDeviation(ctx context.Context, projectID, revNo, deviceID, clientRequest, vendorReply string) (*entity.Project, error) {
	if strings.TrimSpace(clientRequest) == "" {
		return nil, invalid("client request is required")
	}
	return s.modifyDevice(ctx, projectID, revNo, deviceID, "device_updated", func(d *entity.Device) error {
		d.Deviations = append(d.Deviations, entity.Deviation{
			ID:            s.projects.NewID(),
			ClientRequest: clientRequest,
			VendorReply:   vendorReply,
		})
		return nil
	})
}

// RemoveDeviceDeviation drops one deviation from a device.
func (s *RevisionService) RemoveDeviceDeviation(ctx context.Context, projectID, revNo, deviceID, deviationID string) (*entity.Project, error) {
	return s.modifyDevice(ctx, projectID, revNo, deviceID, "device_updated", func(d *entity.Device) error {
		for i := range d.Deviations {
			if d.Deviations[i].ID == deviationID {
				d.Deviations = append(d.Deviations[:i], d.Deviations[i+1:]...)
				return nil
			}
		}
		return notFound("deviation", deviationID)
	})
}

// SetDeviceAccessories replaces a device's accessories with entries of the fixed list.
func (s *RevisionService) SetDeviceAccessories(ctx context.Context, projectID, revNo, deviceID string, selections []AccessorySelection) (*entity.Project, error) {
	accessories := make([]entity.Accessory, 0, len(selections))
	for _, sel := range selections {
		acc, ok := FindAccessory(sel.ID)
		if !ok {
			return nil, notFound("accessory", sel.ID)
		}
		if sel.Qty < 0 {
			return nil, invalid("accessory %s: quantity must not be negative", sel.ID)
		}
		if sel.Qty > 0 {
			acc.Qty = sel.Qty
		}
		accessories = append(accessories, acc)
	}
	return s.modifyDevice(ctx, projectID, revNo, deviceID, "device_updated", func(d *entity.Device) error {
		d.Accessories = accessories
		return nil
	})
}

func (s *RevisionService) modifyDevice(ctx context.Context, projectID, revNo, deviceID, action string, fn func(d *entity.Device) error) (*entity.Project, error) {
	p, err := s.writer.update(ctx, projectID, func(p *entity.Project) error {
		rev, err := findRevision(p, revNo)
		if err != nil {
			return err
		}
		i := rev.DeviceIndex(deviceID)
		if i < 0 {
			return notFound("device", deviceID)
		}
		d := rev.Devices[i].Clone()
		if err := fn(&d); err != nil {
			return err
		}
		rev.Devices[i] = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.events.PublishProjectUpdate(projectID, action)
	return p, nil
}

// RevUp appends a new revision numbered latest+1 holding a deep copy of the latest revision's
// devices. Latest is decided by numeric value, so "10" follows "09" and "100" follows "99".
func (s *RevisionService) RevUp(ctx context.Context, projectID string) (*entity.Project, error) {
	var newRevNo string
	p, err := s.writer.update(ctx, projectID, func(p *entity.Project) error {
		if len(p.Revisions) == 0 {
			return invalid("project %s has no revisions to rev up from", projectID)
		}
		latest := p.LatestRevisionIndex()
		if latest < 0 {
			return invalid("project %s has no numbered revision", projectID)
		}
		n, err := entity.ParseRevNo(p.Revisions[latest].RevNo)
		if err != nil {
			return invalid("%v", err)
		}

		newRevNo = entity.FormatRevNo(n + 1)
		devices := entity.CloneDevices(p.Revisions[latest].Devices)
		if devices == nil {
			devices = []entity.Device{}
		}
		p.Revisions = append(p.Revisions, entity.Revision{RevNo: newRevNo, Devices: devices})
		p.LastRev = newRevNo
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Revision created",
		zap.String("project_id", projectID),
		zap.String("rev_no", newRevNo),
	)
	s.events.PublishProjectUpdate(projectID, "rev_up")
	return p, nil
}

// CopyRevisionDevices replaces the target revision's devices with a deep copy of the source
// revision's devices. Devices only present in the target are lost.
func (s *RevisionService) CopyRevisionDevices(ctx context.Context, targetProjectID, targetRevNo, sourceProjectID, sourceRevNo string) (*entity.Project, error) {
	p, err := s.writer.modify(ctx, func(projects []entity.Project) ([]entity.Project, int, error) {
		si := repository.IndexOfProject(projects, sourceProjectID)
		if si < 0 {
			return nil, -1, notFound("source project", sourceProjectID)
		}
		src := projects[si].RevisionIndex(sourceRevNo)
		if src < 0 {
			return nil, -1, notFound("source revision", sourceRevNo)
		}
		copied := entity.CloneDevices(projects[si].Revisions[src].Devices)
		if copied == nil {
			copied = []entity.Device{}
		}

		ti := repository.IndexOfProject(projects, targetProjectID)
		if ti < 0 {
			return nil, -1, notFound("target project", targetProjectID)
		}
		dst := projects[ti].RevisionIndex(targetRevNo)
		if dst < 0 {
			return nil, -1, notFound("target revision", targetRevNo)
		}
		projects[ti].Revisions[dst].Devices = copied
		return projects, ti, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Revision devices copied",
		zap.String("source_project_id", sourceProjectID),
		zap.String("source_rev_no", sourceRevNo),
		zap.String("target_project_id", targetProjectID),
		zap.String("target_rev_no", targetRevNo),
		zap.Int("devices", len(p.Revisions[p.RevisionIndex(targetRevNo)].Devices)),
	)
	s.events.PublishProjectUpdate(targetProjectID, "revision_copied")
	return p, nil
}
