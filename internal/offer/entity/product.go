package entity

// Product is a catalog item. Devices snapshot it when they are added to a revision.
type Product struct {
	ID                      string `json:"id"`
	Category                string `json:"category,omitempty"`
	Name                    string `json:"name,omitempty"`
	Type                    string `json:"type,omitempty"`
	Range                   string `json:"range,omitempty"`
	Brand                   string `json:"brand,omitempty"`
	Model                   string `json:"model,omitempty"`
	BodyMaterial            string `json:"body_material,omitempty"`
	IPRating                string `json:"ip_rating,omitempty"`
	SIL                     string `json:"sil,omitempty"`
	Protocol                string `json:"protocol,omitempty"`
	HazardousClassification string `json:"hazardous_classification,omitempty"`
	Voltage                 string `json:"voltage,omitempty"`
	TechnicalSpecs          string `json:"technical_specs,omitempty"`
	Img                     string `json:"img,omitempty"`
	TagNumber               string `json:"tag_number,omitempty"`
	Datasheet               string `json:"datasheet,omitempty"`
	Installations           string `json:"installations,omitempty"`
}

// Accessory is picked from the fixed accessory list and copied by value into a device.
type Accessory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	PartNo string `json:"part_no"`
	Qty    int    `json:"qty"`
}

// TestTool belongs to an independent catalog unrelated to projects.
type TestTool struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Model   string `json:"model"`
	Picture string `json:"picture"`
}

// Client is referenced by projects through ClientID.
type Client struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Logo          string `json:"logo,omitempty"`
}
