package service

import (
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
)

var equipmentHeaders = []string{
	"Product Name", "Model", "Brand", "Qty Main", "Qty Spare",
	"Category", "Type", "Range", "Body Material", "IP Rating", "SIL", "Protocol",
	"Hazardous Classification", "Voltage", "Technical Specs", "Tag Number",
}

// OfferHeaders are the column titles of an offer row, in order.
var OfferHeaders = append(append([]string{}, equipmentHeaders...), "Accessories", "Deviations")

// OfferRow is one device flattened for the technical offer.
type OfferRow struct {
	ProductName             string
	Model                   string
	Brand                   string
	QtyMain                 int
	QtySpare                int
	Category                string
	Type                    string
	Range                   string
	BodyMaterial            string
	IPRating                string
	SIL                     string
	Protocol                string
	HazardousClassification string
	Voltage                 string
	TechnicalSpecs          string
	TagNumber               string
	Accessories             string
	Deviations              string
}

func (r OfferRow) equipmentValues() []interface{} {
	return []interface{}{
		r.ProductName, r.Model, r.Brand, r.QtyMain, r.QtySpare,
		r.Category, r.Type, r.Range, r.BodyMaterial, r.IPRating, r.SIL, r.Protocol,
		r.HazardousClassification, r.Voltage, r.TechnicalSpecs, r.TagNumber,
	}
}

// Values returns the cells in OfferHeaders order.
func (r OfferRow) Values() []interface{} {
	return append(r.equipmentValues(), r.Accessories, r.Deviations)
}

// ExportRow is the "Save As" flattening of a device. Details are only filled when requested.
type ExportRow struct {
	OfferRow
	TotalQty           int
	AccessoriesCount   int
	DeviationsCount    int
	AccessoriesDetails string
	DeviationsDetails  string
}

// ExportHeaders returns the column titles of an export row.
func ExportHeaders(includeDetails bool) []string {
	h := []string{
		"Product Name", "Model", "Brand", "Qty Main", "Qty Spare", "Total Qty",
		"Category", "Type", "Range", "Body Material", "IP Rating", "SIL", "Protocol",
		"Hazardous Classification", "Voltage", "Technical Specs", "Tag Number",
		"Accessories Count", "Deviations Count",
	}
	if includeDetails {
		h = append(h, "Accessories Details", "Deviations Details")
	}
	return h
}

// Values returns the cells in ExportHeaders order.
func (r ExportRow) Values(includeDetails bool) []interface{} {
	v := []interface{}{
		r.ProductName, r.Model, r.Brand, r.QtyMain, r.QtySpare, r.TotalQty,
		r.Category, r.Type, r.Range, r.BodyMaterial, r.IPRating, r.SIL, r.Protocol,
		r.HazardousClassification, r.Voltage, r.TechnicalSpecs, r.TagNumber,
		r.AccessoriesCount, r.DeviationsCount,
	}
	if includeDetails {
		v = append(v, r.AccessoriesDetails, r.DeviationsDetails)
	}
	return v
}

// FormatAccessories renders accessories as "2x Mounting Bracket (BRK-001); ...".
func FormatAccessories(accessories []entity.Accessory) string {
	parts := make([]string, len(accessories))
	for i, a := range accessories {
		parts[i] = fmt.Sprintf("%dx %s (%s)", a.Qty, a.Name, a.PartNo)
	}
	return strings.Join(parts, "; ")
}

// FormatDeviations renders deviations as "Client: ... | Vendor: ...; ...".
func FormatDeviations(deviations []entity.Deviation) string {
	parts := make([]string, len(deviations))
	for i, d := range deviations {
		parts[i] = fmt.Sprintf("Client: %s | Vendor: %s", d.ClientRequest, d.VendorReply)
	}
	return strings.Join(parts, "; ")
}

func offerRow(d entity.Device) OfferRow {
	pd := d.ProductDetails
	return OfferRow{
		ProductName:             d.Name,
		Model:                   d.Model,
		Brand:                   d.Brand,
		QtyMain:                 d.QtyMain,
		QtySpare:                d.QtySpare,
		Category:                pd.Category,
		Type:                    pd.Type,
		Range:                   pd.Range,
		BodyMaterial:            pd.BodyMaterial,
		IPRating:                pd.IPRating,
		SIL:                     pd.SIL,
		Protocol:                pd.Protocol,
		HazardousClassification: pd.HazardousClassification,
		Voltage:                 pd.Voltage,
		TechnicalSpecs:          pd.TechnicalSpecs,
		TagNumber:               pd.TagNumber,
		Accessories:             FormatAccessories(d.Accessories),
		Deviations:              FormatDeviations(d.Deviations),
	}
}

// BuildOfferRows flattens the devices of rev into one row each, in device order.
// The result depends only on its inputs.
func BuildOfferRows(p *entity.Project, rev *entity.Revision) []OfferRow {
	if rev == nil {
		return []OfferRow{}
	}
	rows := make([]OfferRow, len(rev.Devices))
	for i, d := range rev.Devices {
		rows[i] = offerRow(d)
	}
	return rows
}

// BuildExportRows is BuildOfferRows with totals and counts for the "Save As" export.
func BuildExportRows(p *entity.Project, rev *entity.Revision, includeDetails bool) []ExportRow {
	if rev == nil {
		return []ExportRow{}
	}
	rows := make([]ExportRow, len(rev.Devices))
	for i, d := range rev.Devices {
		base := offerRow(d)
		row := ExportRow{
			OfferRow:         base,
			TotalQty:         d.QtyMain + d.QtySpare,
			AccessoriesCount: len(d.Accessories),
			DeviationsCount:  len(d.Deviations),
		}
		if includeDetails {
			row.AccessoriesDetails = base.Accessories
			row.DeviationsDetails = base.Deviations
		}
		rows[i] = row
	}
	return rows
}
