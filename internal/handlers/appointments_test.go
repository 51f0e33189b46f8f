package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/appointments"
	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
)

func setupAppointmentRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	book, err := appointments.Open(filepath.Join(t.TempDir(), "appointments.json"))
	if err != nil {
		t.Fatalf("opening appointment book: %v", err)
	}
	h := NewAppointmentHandler(book, clinic.NewCatalog(), sse.NewBroadcaster())

	router := gin.New()
	router.POST("/appointments", h.CreateAppointment)
	router.GET("/appointments/upcoming", h.GetUpcomingAppointments)
	router.GET("/appointments/export", h.ExportAppointments)
	router.PUT("/appointments/:id", h.UpdateAppointment)
	router.DELETE("/appointments/:id", h.DeleteAppointment)
	return router
}

func appointmentBody(date string, ids string) string {
	return fmt.Sprintf(`{"patientName":"Ali Khan","phone":"0300-1234567","date":%q,"timeSlot":"14:30","treatmentIds":[%s]}`, date, ids)
}

func isoDate(daysFromNow int) string {
	return time.Now().AddDate(0, 0, daysFromNow).Format("2006-01-02")
}

func TestCreateAppointment(t *testing.T) {
	router := setupAppointmentRouter(t)

	w, resp := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(1), "1,3"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	if id, _ := data["id"].(string); id == "" {
		t.Errorf("booked appointment has no id")
	}
	if total, _ := data["total"].(float64); total != 4500 {
		t.Errorf("expected total 4500 for check-up plus extraction, got %v", data["total"])
	}
	treatments, _ := data["treatments"].([]interface{})
	if len(treatments) != 2 {
		t.Errorf("expected 2 resolved treatments, got %v", data["treatments"])
	}
}

func TestCreateAppointmentRejectsBadInput(t *testing.T) {
	router := setupAppointmentRouter(t)

	t.Run("past date", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(-1), "1"))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown treatment id", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(1), "42"))
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("no treatments", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPost, "/appointments",
			`{"patientName":"Ali Khan","phone":"0300-1234567","date":"2030-01-01","timeSlot":"14:30","treatmentIds":[]}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestUpcomingOrdering(t *testing.T) {
	router := setupAppointmentRouter(t)

	if w, _ := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(5), "1")); w.Code != http.StatusCreated {
		t.Fatalf("seeding appointment failed: %d", w.Code)
	}
	if w, _ := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(2), "1")); w.Code != http.StatusCreated {
		t.Fatalf("seeding appointment failed: %d", w.Code)
	}

	w, resp := doJSON(t, router, http.MethodGet, "/appointments/upcoming", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, _ := resp.Data.([]interface{})
	if len(list) != 2 {
		t.Fatalf("expected 2 upcoming appointments, got %d", len(list))
	}
	first := list[0].(map[string]interface{})
	if first["date"] != isoDate(2) {
		t.Errorf("expected the sooner appointment first, got %v", first["date"])
	}
}

func TestUpdateAndDeleteAppointment(t *testing.T) {
	router := setupAppointmentRouter(t)

	_, resp := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(1), "1"))
	id := resp.Data.(map[string]interface{})["id"].(string)

	t.Run("update keeps the id", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodPut, "/appointments/"+id, appointmentBody(isoDate(3), "2"))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		data := resp.Data.(map[string]interface{})
		if data["id"] != id {
			t.Errorf("update changed the id: %v", data["id"])
		}
		if data["date"] != isoDate(3) {
			t.Errorf("update did not apply the new date: %v", data["date"])
		}
	})

	t.Run("update of unknown id", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodPut, "/appointments/nope", appointmentBody(isoDate(1), "1"))
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})

	t.Run("delete empties the upcoming view", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodDelete, "/appointments/"+id, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		w, resp := doJSON(t, router, http.MethodGet, "/appointments/upcoming", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if list, _ := resp.Data.([]interface{}); len(list) != 0 {
			t.Errorf("expected no upcoming appointments, got %v", list)
		}
	})

	t.Run("delete of unknown id", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodDelete, "/appointments/"+id, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", w.Code)
		}
	})
}

func TestExportAppointments(t *testing.T) {
	router := setupAppointmentRouter(t)

	if w, _ := doJSON(t, router, http.MethodPost, "/appointments", appointmentBody(isoDate(1), "1")); w.Code != http.StatusCreated {
		t.Fatalf("seeding appointment failed: %d", w.Code)
	}

	t.Run("streams a workbook", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointments/export", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
			t.Errorf("unexpected content type %q", ct)
		}
		if w.Body.Len() == 0 {
			t.Errorf("export body is empty")
		}
	})

	t.Run("rejects malformed date filters", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointments/export?from=yesterday", nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}
