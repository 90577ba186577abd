package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskflow/internal/services"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 90
)

type ReportHandler struct {
	service services.ReportService
	log     *zap.Logger
}

func NewReportHandler(service services.ReportService, log *zap.Logger) *ReportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReportHandler{service: service, log: log}
}

// @Summary      Dashboard analytics
// @Tags         analytics
// @Produce      json
// @Param        days  query     int  false  "Trend window in days (default 7)"
// @Success      200   {object}  analytics.Dashboard
// @Router       /api/analytics/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(defaultTrendDays)))
	if err != nil || days < 1 {
		days = defaultTrendDays
	}
	days = min(days, maxTrendDays)

	data, err := h.service.Dashboard(c.Request.Context(), days)
	if err != nil {
		respondError(c, h.log, "[report][summary]", err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      PDF report
// @Tags         analytics
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/analytics/report.pdf [get]
func (h *ReportHandler) GetPDF(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.WritePDF(c.Request.Context(), &buf); err != nil {
		respondError(c, h.log, "[report][pdf]", err)
		return
	}
	name := "taskflow-report-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
