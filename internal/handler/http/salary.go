package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/washpay-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type SalaryHandler interface {
	// Slips
	ListSlips(w http.ResponseWriter, r *http.Request)
	GetSlip(w http.ResponseWriter, r *http.Request)
	SaveSlip(w http.ResponseWriter, r *http.Request)
	SlipPDF(w http.ResponseWriter, r *http.Request)
	Attendance(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)

	// Batch
	ExportMonth(w http.ResponseWriter, r *http.Request)
	RunDrafts(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	slipService   salary.SlipService
	exportService salary.ExportService
}

func NewSalaryHandler(slipService salary.SlipService, exportService salary.ExportService) SalaryHandler {
	return &salaryHandlerImpl{slipService: slipService, exportService: exportService}
}

// periodFromQuery reads the 0-based month and the year from ?month=&year=.
func periodFromQuery(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 0 || month > 11 {
		return 0, 0, fmt.Errorf("%w: month must be 0-11", salary.ErrInvalidPeriod)
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil || year < 2000 {
		return 0, 0, fmt.Errorf("%w: year is required", salary.ErrInvalidPeriod)
	}
	return month, year, nil
}

// ========== SLIPS ==========

func (h *salaryHandlerImpl) ListSlips(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.slipService.ListSlips(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: int64(len(result))})
}

func (h *salaryHandlerImpl) GetSlip(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.slipService.GetSlip(r.Context(), workerID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) SaveSlip(w http.ResponseWriter, r *http.Request) {
	var req salary.SaveSlipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkerID = chi.URLParam(r, "workerID")

	principal, _ := middleware.PrincipalFromContext(r.Context())
	result, err := h.slipService.SaveSlip(r.Context(), req, principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary slip saved", result)
}

func (h *salaryHandlerImpl) SlipPDF(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.exportService.RenderSlipPDF(r.Context(), workerID, month, year, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", slipDisposition(workerID, year, month))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (h *salaryHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.slipService.Attendance(r.Context(), workerID, month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *salaryHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req salary.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.slipService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== BATCH ==========

func (h *salaryHandlerImpl) ExportMonth(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.exportService.ExportMonth(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary export created", result)
}

func (h *salaryHandlerImpl) RunDrafts(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(r.Context())
	result, err := h.slipService.RunDrafts(r.Context(), month, year, principal.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// slipDisposition quotes the filename so worker ids cannot break the header.
func slipDisposition(workerID string, year, month int) string {
	return mime.FormatMediaType("inline", map[string]string{
		"filename": fmt.Sprintf("slip-%s-%04d-%02d.pdf", workerID, year, month+1),
	})
}
