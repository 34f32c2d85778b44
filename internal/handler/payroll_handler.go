package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/payroll_report_sample/internal/domain"
	"github.com/locvowork/payroll_report_sample/internal/export"
	"github.com/locvowork/payroll_report_sample/internal/service"
	"github.com/locvowork/payroll_report_sample/internal/service/serviceutils"
)

type PayrollHandler struct {
	svc    *service.PayrollService
	layout export.ReportLayout
}

func NewPayrollHandler(svc *service.PayrollService, layout export.ReportLayout) *PayrollHandler {
	return &PayrollHandler{svc: svc, layout: layout}
}

func (h *PayrollHandler) ListDepartmentsHandler(c echo.Context) error {
	departments, err := h.svc.ListDepartments(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to list departments", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Departments listed successfully", departments)
}

func (h *PayrollHandler) GetDepartmentHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	department, err := h.svc.GetDepartment(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to get department", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department retrieved successfully", department)
}

func (h *PayrollHandler) ListDepartmentEmployeesHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	employees, err := h.svc.ListDepartmentEmployees(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to list employees", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employees listed successfully", employees)
}

func (h *PayrollHandler) DepartmentPayrollHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	total, err := h.svc.ComputeDepartmentTotal(c.Request().Context(), id)
	if err != nil {
		return payrollError(c, err)
	}

	summary := domain.SummaryTrace{DepartmentID: id, Total: total}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Department payroll computed successfully", summary)
}

func (h *PayrollHandler) PayrollHistoryHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	history, err := h.svc.PayrollHistory(c.Request().Context(), id)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to load payroll history", err)
	}

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Payroll history retrieved successfully", history)
}

func (h *PayrollHandler) ExportDepartmentPayrollHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid department ID", err)
	}

	report, err := h.svc.DepartmentReport(c.Request().Context(), id)
	if err != nil {
		return payrollError(c, err)
	}

	f, err := export.BuildDepartmentReport(h.layout, report)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to build report", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to write report", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="department_%d_payroll.xlsx"`, id))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// payrollError maps the aggregator's error taxonomy onto HTTP statuses.
func payrollError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrCancelled):
		// 499 in the nginx convention; echo has no constant for it.
		return serviceutils.ResponseError(c, 499, "Payroll aggregation cancelled", err)
	case errors.Is(err, domain.ErrStorageUnavailable):
		return serviceutils.ResponseError(c, http.StatusServiceUnavailable, "Payroll storage unavailable", err)
	default:
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to compute payroll", err)
	}
}
