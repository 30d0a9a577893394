package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/report"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/rule"
	"github.com/cmlabs-hris/hris-policy-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const defaultAuditLogLimit = 100

type RuleHandler interface {
	ValidateLeave(w http.ResponseWriter, r *http.Request)
	ValidateSalary(w http.ResponseWriter, r *http.Request)
	ValidatePromotion(w http.ResponseWriter, r *http.Request)

	AnalyzeAttendance(w http.ResponseWriter, r *http.Request)
	ReviewStatus(w http.ResponseWriter, r *http.Request)
	TrainingCompliance(w http.ResponseWriter, r *http.Request)
	RetirementEligibility(w http.ResponseWriter, r *http.Request)

	RunAudit(w http.ResponseWriter, r *http.Request)
	ExportAudit(w http.ResponseWriter, r *http.Request)
	DownloadExport(w http.ResponseWriter, r *http.Request)
	DeleteExport(w http.ResponseWriter, r *http.Request)
	AuditLog(w http.ResponseWriter, r *http.Request)
}

type RuleHandlerImpl struct {
	ruleService rule.RuleService
	exporter    report.ReportExporter
	files       storage.FileStorage
}

func NewRuleHandler(ruleService rule.RuleService, exporter report.ReportExporter, files storage.FileStorage) RuleHandler {
	return &RuleHandlerImpl{
		ruleService: ruleService,
		exporter:    exporter,
		files:       files,
	}
}

// ValidateLeave implements RuleHandler.
func (h *RuleHandlerImpl) ValidateLeave(w http.ResponseWriter, r *http.Request) {
	var req rule.ValidateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ruleService.ValidateLeaveRequest(r.Context(), req.Input())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ValidateSalary implements RuleHandler.
func (h *RuleHandlerImpl) ValidateSalary(w http.ResponseWriter, r *http.Request) {
	var req rule.ValidateSalaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateSalary decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ruleService.ValidateSalaryAdjustment(r.Context(), req.Input())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ValidatePromotion implements RuleHandler.
func (h *RuleHandlerImpl) ValidatePromotion(w http.ResponseWriter, r *http.Request) {
	var req rule.ValidatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidatePromotion decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ruleService.ValidatePromotion(r.Context(), strings.TrimSpace(req.EmployeeID), strings.TrimSpace(req.NewPositionID))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AnalyzeAttendance implements RuleHandler.
func (h *RuleHandlerImpl) AnalyzeAttendance(w http.ResponseWriter, r *http.Request) {
	periodDays, ok := validator.ParsePositiveInt(r.URL.Query().Get("period_days"), rule.DefaultAttendancePeriodDays)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "period_days",
			Message: "period_days must be a positive integer",
		}})
		return
	}

	result, err := h.ruleService.AnalyzeAttendance(r.Context(), chi.URLParam(r, "id"), periodDays)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ReviewStatus implements RuleHandler.
func (h *RuleHandlerImpl) ReviewStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.ruleService.CheckReviewDue(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// TrainingCompliance implements RuleHandler.
func (h *RuleHandlerImpl) TrainingCompliance(w http.ResponseWriter, r *http.Request) {
	result, err := h.ruleService.CheckTrainingCompliance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RetirementEligibility implements RuleHandler.
func (h *RuleHandlerImpl) RetirementEligibility(w http.ResponseWriter, r *http.Request) {
	result, err := h.ruleService.CheckRetirementEligibility(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RunAudit implements RuleHandler.
func (h *RuleHandlerImpl) RunAudit(w http.ResponseWriter, r *http.Request) {
	result, err := h.ruleService.RunComplianceAudit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportAudit runs a fresh audit and stores it in the requested format.
func (h *RuleHandlerImpl) ExportAudit(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := rule.ExportAuditRequest{
		Format:   strings.ToLower(query.Get("format")),
		Filename: query.Get("filename"),
	}
	if req.Format == "" {
		req.Format = rule.ExportFormatJSON
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.ruleService.RunComplianceAudit(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	stored, err := h.exporter.Export(r.Context(), req.Format, result, req.Filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	url, err := h.exporter.URL(r.Context(), stored)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Audit report exported successfully", rule.ExportAuditResponse{
		Filename: stored,
		URL:      url,
		Report:   result,
	})
}

// DownloadExport streams a previously exported report.
func (h *RuleHandlerImpl) DownloadExport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !validator.IsValidFilename(filename) || validator.IsEmpty(filename) {
		response.BadRequest(w, "Invalid file name", nil)
		return
	}

	file, err := h.files.Download(r.Context(), filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, file); err != nil {
		slog.Error("DownloadExport copy error", "filename", filename, "error", err)
	}
}

// DeleteExport removes a stored export. Unknown names are 404 so typos are not silently accepted.
func (h *RuleHandlerImpl) DeleteExport(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !validator.IsValidFilename(filename) || validator.IsEmpty(filename) {
		response.BadRequest(w, "Invalid file name", nil)
		return
	}

	exists, err := h.files.Exists(r.Context(), filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !exists {
		response.HandleError(w, storage.ErrFileNotFound)
		return
	}

	if err := h.files.Delete(r.Context(), filename); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Audit export deleted", "filename", filename)
	response.SuccessWithMessage(w, "Export deleted", nil)
}

// AuditLog implements RuleHandler.
func (h *RuleHandlerImpl) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit, ok := validator.ParsePositiveInt(r.URL.Query().Get("limit"), defaultAuditLogLimit)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must be a positive integer",
		}})
		return
	}

	entries := h.ruleService.RecentAuditEntries(limit)
	response.SuccessWithMeta(w, entries, &response.Meta{
		Limit:      limit,
		TotalItems: len(entries),
	})
}
