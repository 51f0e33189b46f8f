package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
)

func setupTreatmentRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewTreatmentHandler(clinic.NewCatalog(), sse.NewBroadcaster())

	router := gin.New()
	router.GET("/treatments", h.ListTreatments)
	router.PUT("/treatments", h.ReplaceNames)
	router.PUT("/treatments/prices", h.ReplacePrices)
	return router
}

func TestListTreatments(t *testing.T) {
	router := setupTreatmentRouter(t)

	w, resp := doJSON(t, router, http.MethodGet, "/treatments", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, _ := resp.Data.([]interface{})
	if len(list) != 7 {
		t.Fatalf("expected the 7 seeded treatments, got %d", len(list))
	}
	first := list[0].(map[string]interface{})
	if first["id"].(float64) != 1 || first["name"] != "Dental Check-up & Consultation" {
		t.Errorf("unexpected first treatment: %v", first)
	}
}

func TestReplaceNamesEndpoint(t *testing.T) {
	router := setupTreatmentRouter(t)

	w, resp := doJSON(t, router, http.MethodPut, "/treatments",
		`{"names":["Teeth Whitening","Gum Surgery"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	list, _ := resp.Data.([]interface{})
	if len(list) != 2 {
		t.Fatalf("expected 2 treatments after edit, got %d", len(list))
	}
	kept := list[0].(map[string]interface{})
	if kept["price"].(float64) != 12000 {
		t.Errorf("known name should keep its price, got %v", kept["price"])
	}
}

func TestReplacePricesEndpoint(t *testing.T) {
	router := setupTreatmentRouter(t)

	t.Run("applies a valid edit", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPut, "/treatments/prices",
			`{"entries":[{"name":"Cleaning","price":"7000"},{"name":"Whitening","price":"12500.5"}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		list, _ := resp.Data.([]interface{})
		if len(list) != 2 {
			t.Fatalf("expected 2 treatments, got %d", len(list))
		}
	})

	t.Run("names the offending line", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPut, "/treatments/prices",
			`{"entries":[{"name":"Cleaning","price":"7000"},{"name":"Whitening","price":"abc"}]}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if !strings.Contains(resp.Error, "line 2") {
			t.Errorf("error should name line 2: %q", resp.Error)
		}
	})
}
