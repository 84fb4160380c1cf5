package handler

import (
	"net/http"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/testutil"
)

func revisionDevices(t *testing.T, env *testutil.TestEnv, token, projectID, revNo string) []interface{} {
	t.Helper()
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/"+projectID+"/revisions/"+revNo, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	return data["devices"].([]interface{})
}

func TestAddProductsMergesQuantities(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedProducts(t, env.Repos, testProduct("prod_1", "Flame Detector"), testProduct("prod_2", "Smoke Detector"))
	id := createProject(t, env, token, "Merge", "M-1")["id"].(string)

	path := "/api/v1/projects/" + id + "/revisions/00/products"
	w := testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "prod_1", "qty_main": 2, "qty_spare": 1}},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{
		"products": []map[string]interface{}{
			{"product_id": "prod_1", "qty_main": 3},
			{"product_id": "prod_2"},
		},
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	devices := revisionDevices(t, env, token, id, "00")
	if len(devices) != 2 {
		t.Fatalf("Expected 2 devices, got %d", len(devices))
	}
	first := devices[0].(map[string]interface{})
	if first["qty_main"] != float64(5) || first["qty_spare"] != float64(1) {
		t.Errorf("Expected merged quantities 5/1, got %v/%v", first["qty_main"], first["qty_spare"])
	}
	second := devices[1].(map[string]interface{})
	if second["qty_main"] != float64(1) {
		t.Errorf("Expected default qty_main 1, got %v", second["qty_main"])
	}
	details := first["product_details"].(map[string]interface{})
	if details["ip_rating"] != "IP66" {
		t.Errorf("Expected product snapshot, got %v", details)
	}

	w = testutil.DoRequest(env.Router, "POST", path, map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "missing"}},
	}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRevUpIsolatesRevisions(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedProducts(t, env.Repos, testProduct("prod_1", "Flame Detector"))
	id := createProject(t, env, token, "RevUp", "R-1")["id"].(string)

	testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+id+"/revisions/00/products", map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "prod_1", "qty_main": 4}},
	}, token)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+id+"/rev-up", nil, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["last_rev"] != "01" {
		t.Errorf("Expected last_rev 01, got %v", data["last_rev"])
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+id+"/revisions/01/devices/prod_1/deviations",
		map[string]interface{}{"client_request": "Stainless steel body", "vendor_reply": "Accepted"}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/projects/"+id+"/revisions/01/devices/prod_1/accessories",
		map[string]interface{}{"accessories": []map[string]interface{}{{"id": "acc_1", "qty": 2}}}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	rev1 := revisionDevices(t, env, token, id, "01")[0].(map[string]interface{})
	if devs := rev1["deviations"].([]interface{}); len(devs) != 1 {
		t.Errorf("Expected 1 deviation in rev 01, got %d", len(devs))
	}
	if accs := rev1["accessories"].([]interface{}); len(accs) != 1 {
		t.Errorf("Expected 1 accessory in rev 01, got %d", len(accs))
	}

	rev0 := revisionDevices(t, env, token, id, "00")[0].(map[string]interface{})
	if _, ok := rev0["deviations"]; ok {
		t.Errorf("Rev 00 must not see deviations added to rev 01: %v", rev0["deviations"])
	}
	if rev0["qty_main"] != float64(4) {
		t.Errorf("Expected rev 00 qty 4, got %v", rev0["qty_main"])
	}

	deviationID := rev1["deviations"].([]interface{})[0].(map[string]interface{})["id"].(string)
	w = testutil.DoRequest(env.Router, "DELETE",
		"/api/v1/projects/"+id+"/revisions/01/devices/prod_1/deviations/"+deviationID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateDeviceReplacesWithoutMerging(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedProducts(t, env.Repos, testProduct("prod_1", "Flame Detector"))
	id := createProject(t, env, token, "Update", "U-1")["id"].(string)

	testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+id+"/revisions/00/products", map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "prod_1", "qty_main": 4}},
	}, token)

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/projects/"+id+"/revisions/00/devices/prod_1", map[string]interface{}{
		"name":      "Flame Detector",
		"model":     "SFD-1000R",
		"brand":     "Simin Gaman Aria/Iran",
		"qty_main":  1,
		"qty_spare": 0,
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	device := revisionDevices(t, env, token, id, "00")[0].(map[string]interface{})
	if device["qty_main"] != float64(1) || device["model"] != "SFD-1000R" {
		t.Errorf("Expected replaced device, got %v", device)
	}

	w = testutil.DoRequest(env.Router, "PUT", "/api/v1/projects/"+id+"/revisions/00/devices/unknown", map[string]interface{}{
		"qty_main": 1,
	}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCopyFromReplacesTargetDevices(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedProducts(t, env.Repos, testProduct("prod_1", "Flame Detector"), testProduct("prod_2", "Smoke Detector"))
	src := createProject(t, env, token, "Source", "S-1")["id"].(string)
	dst := createProject(t, env, token, "Target", "T-1")["id"].(string)

	testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+src+"/revisions/00/products", map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "prod_1", "qty_main": 2}},
	}, token)
	testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+dst+"/revisions/00/products", map[string]interface{}{
		"products": []map[string]interface{}{{"product_id": "prod_2", "qty_main": 9}},
	}, token)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+dst+"/revisions/00/copy-from", map[string]interface{}{
		"source_project_id": src,
		"source_rev_no":     "00",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	devices := revisionDevices(t, env, token, dst, "00")
	if len(devices) != 1 || devices[0].(map[string]interface{})["id"] != "prod_1" {
		t.Errorf("Expected target to hold only the copied device, got %v", devices)
	}

	w = testutil.DoRequest(env.Router, "POST", "/api/v1/projects/"+dst+"/revisions/00/copy-from", map[string]interface{}{
		"source_project_id": src,
		"source_rev_no":     "07",
	}, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}
