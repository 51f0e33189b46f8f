package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/abdaljehan03-maker/clinic-project/internal/appointments"
	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
	"github.com/abdaljehan03-maker/clinic-project/internal/sse"
	"github.com/abdaljehan03-maker/clinic-project/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Book    *appointments.Book
	Catalog *clinic.Catalog
	Events  *sse.Broadcaster
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(book *appointments.Book, catalog *clinic.Catalog, events *sse.Broadcaster) *AppointmentHandler {
	return &AppointmentHandler{Book: book, Catalog: catalog, Events: events}
}

// AppointmentRequest represents the request body for booking or editing
// an appointment. Treatments are referenced by catalog id and resolved
// to (name, price) pairs at booking time.
type AppointmentRequest struct {
	PatientName  string `json:"patientName" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Date         string `json:"date" binding:"required"`
	TimeSlot     string `json:"timeSlot" binding:"required"`
	TreatmentIDs []int  `json:"treatmentIds" binding:"required,min=1"`
}

// AppointmentResponse is the API view of one appointment.
type AppointmentResponse struct {
	ID          string             `json:"id"`
	PatientName string             `json:"patientName"`
	Phone       string             `json:"phone"`
	Date        string             `json:"date"`
	TimeSlot    string             `json:"timeSlot"`
	Treatments  []clinic.Selection `json:"treatments"`
	Total       float64            `json:"total"`
}

func toAppointmentResponse(a appointments.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		PatientName: a.PatientName,
		Phone:       a.Phone,
		Date:        a.Date,
		TimeSlot:    a.TimeSlot,
		Treatments:  a.Treatments,
		Total:       a.Total(),
	}
}

// appointmentFromRequest resolves the catalog selection and assembles
// the appointment a booking or edit will store.
func (h *AppointmentHandler) appointmentFromRequest(req AppointmentRequest) (appointments.Appointment, error) {
	selections, err := h.Catalog.Select(req.TreatmentIDs)
	if err != nil {
		return appointments.Appointment{}, err
	}
	return appointments.Appointment{
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Treatments:  selections,
	}, nil
}

// CreateAppointment books a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.appointmentFromRequest(req)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	booked, err := h.Book.Book(appt)
	if err != nil {
		if clinic.IsPersistence(err) {
			// The booking is live in memory; only the store write failed.
			slog.Error("appointment store write failed", "path", h.Book.Path(), "error", err)
			h.Events.Broadcast("appointments")
			utils.SuccessWithWarning(c, "Appointment booked", toAppointmentResponse(booked),
				"appointment store write failed; on-disk data may be stale")
			return
		}
		respondCoreError(c, err)
		return
	}

	h.Events.Broadcast("appointments")
	utils.Created(c, "Appointment booked successfully", toAppointmentResponse(booked))
}

// GetUpcomingAppointments returns appointments dated today or later,
// soonest first.
func (h *AppointmentHandler) GetUpcomingAppointments(c *gin.Context) {
	upcoming := h.Book.Upcoming()
	out := make([]AppointmentResponse, 0, len(upcoming))
	for _, a := range upcoming {
		out = append(out, toAppointmentResponse(a))
	}
	utils.Success(c, "Upcoming appointments fetched successfully", out)
}

// UpdateAppointment replaces the fields of the appointment in the path.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := h.appointmentFromRequest(req)
	if err != nil {
		respondCoreError(c, err)
		return
	}

	updated, err := h.Book.Edit(c.Param("id"), appt)
	if err != nil {
		if clinic.IsPersistence(err) {
			slog.Error("appointment store write failed", "path", h.Book.Path(), "error", err)
			h.Events.Broadcast("appointments")
			utils.SuccessWithWarning(c, "Appointment updated", toAppointmentResponse(updated),
				"appointment store write failed; on-disk data may be stale")
			return
		}
		respondCoreError(c, err)
		return
	}

	h.Events.Broadcast("appointments")
	utils.Success(c, "Appointment updated successfully", toAppointmentResponse(updated))
}

// DeleteAppointment removes the appointment in the path.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	if err := h.Book.Delete(c.Param("id")); err != nil {
		if clinic.IsPersistence(err) {
			slog.Error("appointment store write failed", "path", h.Book.Path(), "error", err)
			h.Events.Broadcast("appointments")
			utils.SuccessWithWarning(c, "Appointment deleted", nil,
				"appointment store write failed; on-disk data may be stale")
			return
		}
		respondCoreError(c, err)
		return
	}

	h.Events.Broadcast("appointments")
	utils.Success(c, "Appointment deleted successfully", nil)
}

// ExportAppointments streams the collection as an .xlsx workbook,
// optionally bounded by inclusive from/to date query parameters.
func (h *AppointmentHandler) ExportAppointments(c *gin.Context) {
	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	for _, v := range []string{from, to} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			utils.BadRequest(c, "Invalid date filter, use YYYY-MM-DD")
			return
		}
	}

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Appointments"
	file.SetSheetName("Sheet1", sheet)

	file.SetCellValue(sheet, "A1", "Patient Name")
	file.SetCellValue(sheet, "B1", "Phone")
	file.SetCellValue(sheet, "C1", "Date")
	file.SetCellValue(sheet, "D1", "Time")
	file.SetCellValue(sheet, "E1", "Treatments")
	file.SetCellValue(sheet, "F1", "Total (Rs.)")

	row := 2
	for _, a := range h.Book.All() {
		if from != "" && a.Date < from {
			continue
		}
		if to != "" && a.Date > to {
			continue
		}
		names := make([]string, 0, len(a.Treatments))
		for _, t := range a.Treatments {
			names = append(names, t.Name)
		}
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), a.PatientName)
		file.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.Phone)
		file.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.Date)
		file.SetCellValue(sheet, fmt.Sprintf("D%d", row), a.TimeSlot)
		file.SetCellValue(sheet, fmt.Sprintf("E%d", row), strings.Join(names, ", "))
		file.SetCellValue(sheet, fmt.Sprintf("F%d", row), a.Total())
		row++
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		utils.InternalServerError(c, "Failed to build export: "+err.Error())
		return
	}

	filename := fmt.Sprintf("appointments_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
