package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/fahmibastari/cashflow-management/internal/middleware"
	"github.com/fahmibastari/cashflow-management/internal/models"
	"github.com/fahmibastari/cashflow-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the user's expenses as CSV or XLSX downloads.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Date", "Category", "Amount", "Source", "Description"}

func (h *ExportHandler) loadExpenses(c *gin.Context) ([]models.RealizedExpense, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "authentication required")
		return nil, false
	}

	var expenses []models.RealizedExpense
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load expenses")
		return nil, false
	}
	return expenses, true
}

func exportRow(e *models.RealizedExpense) []string {
	return []string{
		e.Date.Format("2006-01-02"),
		e.Category,
		e.Amount.String(),
		e.Source,
		e.Description,
	}
}

// ExportCSV writes the expense ledger as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, ok := h.loadExpenses(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write(exportHeader)
	for i := range expenses {
		_ = writer.Write(exportRow(&expenses[i]))
	}
}

// ExportXLSX writes the expense ledger as an Excel workbook.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	expenses, ok := h.loadExpenses(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to build workbook")
		return
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for row := range expenses {
		for col, value := range exportRow(&expenses[row]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		// headers are already gone; nothing useful left to send
		return
	}
}
