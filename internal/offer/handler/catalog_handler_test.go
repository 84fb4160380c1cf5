package handler

import (
	"net/http"
	"testing"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/testutil"
)

func TestProductCRUD(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/products", map[string]interface{}{
		"category": "Gas Detector",
		"name":     "Gas Detector",
		"model":    "SGD-1000I",
		"brand":    "Simin Gaman Aria/Iran",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	id := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)
	if id == "" {
		t.Fatal("Expected generated id")
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/products?q=sgd", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if total := testutil.ParseResponse(w)["data"].(map[string]interface{})["total"]; total != float64(1) {
		t.Errorf("Expected 1 match, got %v", total)
	}

	w = testutil.DoRequest(env.Router, "DELETE", "/api/v1/products/"+id, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = testutil.DoRequest(env.Router, "GET", "/api/v1/products/"+id, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductImportSkipsIncompleteRows(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()

	csvData := "\ufeffName,Model,Category,IP Rating\n" +
		"Flame Detector,SFD-1000R,Flame,IP66\n" +
		"Heat Detector,,Heat,IP42\n"
	w := testutil.DoUpload(env.Router, "/api/v1/products/import", "file", "products.csv", []byte(csvData), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["success"] != float64(1) || data["skipped"] != float64(1) {
		t.Errorf("Expected 1 imported and 1 skipped, got %v", data)
	}

	w = testutil.DoUpload(env.Router, "/api/v1/products/import", "file", "products.csv",
		[]byte("Name,Model\nOrphan,X-1\n"), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoUpload(env.Router, "/api/v1/products/import", "file", "products.txt", []byte("x"), token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestClientAndTestToolEndpoints(t *testing.T) {
	env, _ := setupOfferTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/clients", map[string]interface{}{
		"name":    "Metro Development Group",
		"address": "12 Central Avenue",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoUpload(env.Router, "/api/v1/test-tools/import", "file", "tools.csv",
		[]byte("name,model,picture\nMultimeter,FLK-87V,\nCalibrator,,\n"), token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/test-tools", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if total := testutil.ParseResponse(w)["data"].(map[string]interface{})["total"]; total != float64(1) {
		t.Errorf("Expected 1 test tool, got %v", total)
	}

	w = testutil.DoRequest(env.Router, "GET", "/api/v1/accessories", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if total := testutil.ParseResponse(w)["data"].(map[string]interface{})["total"]; total != float64(3) {
		t.Errorf("Expected 3 accessories, got %v", total)
	}
}
