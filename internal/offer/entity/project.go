package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Project status
const (
	ProjectStatusDraft     = "Draft"
	ProjectStatusSubmitted = "Submitted"
	ProjectStatusWin       = "Win"
)

// InitialRevNo is the revision every project starts with.
const InitialRevNo = "00"

// ValidProjectStatus reports whether s is one of the known statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusSubmitted, ProjectStatusWin:
		return true
	}
	return false
}

// Project groups revisioned equipment lists with project level deviations and files.
type Project struct {
	ID                string             `json:"id"`
	ProjectName       string             `json:"project_name"`
	ProjectNo         string             `json:"project_no"`
	ClientID          string             `json:"client_id"`
	LastRev           string             `json:"last_rev"`
	PreparedBy        string             `json:"prepared_by"`
	Date              string             `json:"date"`
	Status            string             `json:"status"`
	Revisions         []Revision         `json:"revisions"`
	GeneralDeviations []GeneralDeviation `json:"general_deviations"`
	UploadedFiles     []UploadedFile     `json:"uploaded_files"`
}

// Revision is a numbered snapshot of a project's equipment list.
type Revision struct {
	RevNo   string   `json:"rev_no"`
	Devices []Device `json:"devices"`
}

// Device is one equipment line inside a revision. ID equals the source product id.
type Device struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Model          string      `json:"model"`
	Brand          string      `json:"brand"`
	QtyMain        int         `json:"qty_main"`
	QtySpare       int         `json:"qty_spare"`
	Deviations     []Deviation `json:"deviations,omitempty"`
	Accessories    []Accessory `json:"accessories,omitempty"`
	ProductDetails Product     `json:"product_details"`
}

// Deviation is a client request and vendor reply pair attached to a device.
type Deviation struct {
	ID            string `json:"id"`
	ClientRequest string `json:"client_request"`
	VendorReply   string `json:"vendor_reply"`
}

// GeneralDeviation is a project level note, independent of any revision.
type GeneralDeviation struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Date      string `json:"date"`
	Deviation string `json:"deviation"`
}

// UploadedFile records a client file attached to a project. URL is the blob storage key.
type UploadedFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	UploadedBy  string `json:"uploaded_by"`
	Date        string `json:"date"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Clone returns a device sharing no slices with d.
func (d Device) Clone() Device {
	out := d
	if d.Deviations != nil {
		out.Deviations = make([]Deviation, len(d.Deviations))
		copy(out.Deviations, d.Deviations)
	}
	if d.Accessories != nil {
		out.Accessories = make([]Accessory, len(d.Accessories))
		copy(out.Accessories, d.Accessories)
	}
	return out
}

// CloneDevices deep copies a device list. A nil list stays nil.
func CloneDevices(devices []Device) []Device {
	if devices == nil {
		return nil
	}
	out := make([]Device, len(devices))
	for i, d := range devices {
		out[i] = d.Clone()
	}
	return out
}

// Clone returns a revision sharing no devices with r.
func (r Revision) Clone() Revision {
	return Revision{RevNo: r.RevNo, Devices: CloneDevices(r.Devices)}
}

// Clone returns a fully independent copy of p.
func (p Project) Clone() Project {
	out := p
	if p.Revisions != nil {
		out.Revisions = make([]Revision, len(p.Revisions))
		for i, r := range p.Revisions {
			out.Revisions[i] = r.Clone()
		}
	}
	if p.GeneralDeviations != nil {
		out.GeneralDeviations = make([]GeneralDeviation, len(p.GeneralDeviations))
		copy(out.GeneralDeviations, p.GeneralDeviations)
	}
	if p.UploadedFiles != nil {
		out.UploadedFiles = make([]UploadedFile, len(p.UploadedFiles))
		copy(out.UploadedFiles, p.UploadedFiles)
	}
	return out
}

// RevisionIndex returns the position of revNo in p.Revisions, or -1.
func (p *Project) RevisionIndex(revNo string) int {
	for i := range p.Revisions {
		if p.Revisions[i].RevNo == revNo {
			return i
		}
	}
	return -1
}

// LatestRevisionIndex returns the index of the numerically highest revision, or -1 when
// the project has none. Revision numbers that do not parse are ignored.
func (p *Project) LatestRevisionIndex() int {
	best, bestNo := -1, -1
	for i := range p.Revisions {
		n, err := ParseRevNo(p.Revisions[i].RevNo)
		if err != nil {
			continue
		}
		if n > bestNo {
			best, bestNo = i, n
		}
	}
	return best
}

// DeviceIndex returns the position of the device with id in the revision, or -1.
func (r *Revision) DeviceIndex(id string) int {
	for i := range r.Devices {
		if r.Devices[i].ID == id {
			return i
		}
	}
	return -1
}

// ParseRevNo parses a zero padded revision number such as "07".
func ParseRevNo(revNo string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(revNo))
	if err != nil {
		return 0, fmt.Errorf("invalid revision number %q: %w", revNo, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid revision number %q", revNo)
	}
	return n, nil
}

// FormatRevNo renders n zero padded to at least two digits.
func FormatRevNo(n int) string {
	return fmt.Sprintf("%02d", n)
}
