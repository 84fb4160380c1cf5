package entity

import "testing"

func TestRevNoRoundTrip(t *testing.T) {
	cases := map[string]int{"00": 0, "07": 7, "10": 10, "99": 99, "100": 100, " 3 ": 3}
	for in, want := range cases {
		got, err := ParseRevNo(in)
		if err != nil || got != want {
			t.Errorf("ParseRevNo(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"", "A", "-1", "1.5"} {
		if _, err := ParseRevNo(bad); err == nil {
			t.Errorf("ParseRevNo(%q) should fail", bad)
		}
	}
	if FormatRevNo(9) != "09" || FormatRevNo(10) != "10" || FormatRevNo(123) != "123" {
		t.Error("FormatRevNo must pad to two digits")
	}
}

func TestLatestRevisionIndex(t *testing.T) {
	p := Project{Revisions: []Revision{{RevNo: "10"}, {RevNo: "x"}, {RevNo: "09"}}}
	if i := p.LatestRevisionIndex(); i != 0 {
		t.Errorf("Expected index 0, got %d", i)
	}
	if i := (&Project{}).LatestRevisionIndex(); i != -1 {
		t.Errorf("Expected -1 for no revisions, got %d", i)
	}
}

func TestProjectCloneIsIndependent(t *testing.T) {
	p := Project{
		ID: "P",
		Revisions: []Revision{{RevNo: "00", Devices: []Device{{
			ID:          "A",
			QtyMain:     1,
			Deviations:  []Deviation{{ID: "d1", ClientRequest: "r"}},
			Accessories: []Accessory{{ID: "acc_1", Qty: 1}},
		}}}},
		GeneralDeviations: []GeneralDeviation{{ID: "g1"}},
	}

	c := p.Clone()
	c.Revisions[0].Devices[0].QtyMain = 5
	c.Revisions[0].Devices[0].Deviations[0].ClientRequest = "changed"
	c.Revisions[0].Devices[0].Accessories[0].Qty = 9
	c.GeneralDeviations[0].ID = "g2"

	d := p.Revisions[0].Devices[0]
	if d.QtyMain != 1 || d.Deviations[0].ClientRequest != "r" || d.Accessories[0].Qty != 1 {
		t.Errorf("Clone shares device state: %+v", d)
	}
	if p.GeneralDeviations[0].ID != "g1" {
		t.Error("Clone shares general deviations")
	}
	if CloneDevices(nil) != nil {
		t.Error("CloneDevices(nil) must stay nil")
	}
}

func TestDeviceIndex(t *testing.T) {
	r := Revision{Devices: []Device{{ID: "A"}, {ID: "B"}}}
	if r.DeviceIndex("B") != 1 || r.DeviceIndex("C") != -1 {
		t.Error("Unexpected DeviceIndex result")
	}
}
