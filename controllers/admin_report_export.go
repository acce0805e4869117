package controllers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/tealeg/xlsx"

	"github.com/ErthaLabs/ErthaExchange/config"
	"github.com/ErthaLabs/ErthaExchange/models"
	"github.com/ErthaLabs/ErthaExchange/utils"
)

// transactionReport fetches the transactions for a report period and computes
// the summary both export formats share.
type transactionReportSummary struct {
	TotalTransactions int
	TotalPurchased    float64
	TotalSpent        float64
	TotalConverted    float64
	TotalRefunded     float64
	TotalUsers        int
	NetCoinFlow       float64
}

func reportWindow(period string, now time.Time) (time.Time, time.Time, bool) {
	switch period {
	case "day":
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		return start, end, true
	case "week":
		end := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
		start := end.AddDate(0, 0, -6)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		return start, end, true
	case "month":
		start := now.AddDate(0, 0, -30).Truncate(24 * time.Hour)
		end := now.Add(24 * time.Hour)
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

func fetchTransactionReport(startDate, endDate time.Time) ([]models.Transaction, transactionReportSummary, error) {
	var transactions []models.Transaction
	query := config.DB.Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Preload("User").
		Order("created_at DESC")
	if err := query.Find(&transactions).Error; err != nil {
		return nil, transactionReportSummary{}, err
	}

	var summary transactionReportSummary
	userSet := make(map[uint]bool)
	for _, txn := range transactions {
		summary.TotalTransactions++
		userSet[txn.UserID] = true
		if txn.Status != models.TransactionStatusCompleted {
			continue
		}
		switch txn.Type {
		case models.TransactionTypeCoinPurchase:
			summary.TotalPurchased += txn.Amount
		case models.TransactionTypeServiceBooking:
			summary.TotalSpent += txn.Amount
		case models.TransactionTypeCoinConversion:
			summary.TotalConverted += txn.Amount
		case models.TransactionTypeRefund:
			summary.TotalRefunded += txn.Amount
		}
	}
	summary.TotalUsers = len(userSet)
	summary.NetCoinFlow = math.Round((summary.TotalPurchased-summary.TotalSpent-summary.TotalConverted-summary.TotalRefunded)*100) / 100
	summary.TotalPurchased = math.Round(summary.TotalPurchased*100) / 100
	summary.TotalSpent = math.Round(summary.TotalSpent*100) / 100
	summary.TotalConverted = math.Round(summary.TotalConverted*100) / 100
	summary.TotalRefunded = math.Round(summary.TotalRefunded*100) / 100

	return transactions, summary, nil
}

// Admin: Download transaction report as Excel
func DownloadTransactionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadTransactionReportExcel called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating Excel report for period: %s", period)

	startDate, endDate, ok := reportWindow(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	transactions, summary, err := fetchTransactionReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for Excel report", len(transactions))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transaction Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString(utils.AppName + " - Transaction Report")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Period: " + strings.ToUpper(period) + " | " + startDate.Format("2006-01-02") + " to " + endDate.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"Txn ID", "User ID", "Username", "Date", "Type", "Amount", "Balance Before", "Balance After", "Status", "Reference"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetInt(int(txn.UserID))
		row.AddCell().SetString(txn.User.Username)
		row.AddCell().SetString(txn.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetFloat(txn.Amount)
		row.AddCell().SetFloat(txn.BalanceBefore)
		row.AddCell().SetFloat(txn.BalanceAfter)
		row.AddCell().SetString(txn.Status)
		row.AddCell().SetString(txn.Reference)
	}

	sheet.AddRow() // spacing

	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Summary")
	style := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	style.Font = *font
	summaryRow.Cells[0].SetStyle(style)

	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
		{"Coins Purchased", fmt.Sprintf("%.2f", summary.TotalPurchased)},
		{"Coins Spent on Bookings", fmt.Sprintf("%.2f", summary.TotalSpent)},
		{"Coins Converted to Fiat", fmt.Sprintf("%.2f", summary.TotalConverted)},
		{"Coins Refunded", fmt.Sprintf("%.2f", summary.TotalRefunded)},
		{"Active Users", fmt.Sprintf("%d", summary.TotalUsers)},
		{"Net Coin Flow", fmt.Sprintf("%.2f", summary.NetCoinFlow)},
	}
	for _, data := range summaryData {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_report_%s.xlsx", period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", period)
}

// Admin: Download transaction report as PDF
func DownloadTransactionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadTransactionReportPDF called")

	period := c.DefaultQuery("period", "day")
	utils.LogDebug("Generating PDF report for period: %s", period)

	startDate, endDate, ok := reportWindow(period, time.Now())
	if !ok {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", "Period must be day, week, or month")
		return
	}

	transactions, summary, err := fetchTransactionReport(startDate, endDate)
	if err != nil {
		utils.LogError("Failed to fetch transactions: %v", err)
		utils.InternalServerError(c, "Failed to fetch transactions", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d transactions for PDF report", len(transactions))

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, utils.AppName+" - Transaction Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, "Coin-based Service Marketplace")
	pdf.Ln(6)
	pdf.Cell(0, 8, "Period: "+strings.ToUpper(period)+" | "+startDate.Format("2006-01-02")+" to "+endDate.Format("2006-01-02"))
	pdf.Ln(10)

	headers := []string{"Txn ID", "User ID", "Username", "Date", "Type", "Amount", "Before", "After", "Status", "Reference"}
	colWidths := []float64{18, 18, 35, 30, 32, 22, 22, 22, 25, 50}
	pdf.SetFont("Arial", "B", 11)
	for i, h := range headers {
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	fill := false
	for _, txn := range transactions {
		pdf.SetFillColor(245, 245, 245)
		if fill {
			pdf.SetFillColor(230, 240, 255)
		}
		fill = !fill
		pdf.CellFormat(colWidths[0], 8, fmt.Sprintf("%d", txn.ID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", txn.UserID), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[2], 8, txn.User.Username, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 8, txn.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[4], 8, txn.Type, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[5], 8, fmt.Sprintf("%.2f", txn.Amount), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[6], 8, fmt.Sprintf("%.2f", txn.BalanceBefore), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[7], 8, fmt.Sprintf("%.2f", txn.BalanceAfter), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(colWidths[8], 8, txn.Status, "1", 0, "C", fill, 0, "")
		pdf.CellFormat(colWidths[9], 8, txn.Reference, "1", 0, "L", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(70, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	pdf.SetFillColor(255, 255, 255)
	summaryData := [][]string{
		{"Total Transactions", fmt.Sprintf("%d", summary.TotalTransactions)},
		{"Coins Purchased", fmt.Sprintf("%.2f", summary.TotalPurchased)},
		{"Coins Spent on Bookings", fmt.Sprintf("%.2f", summary.TotalSpent)},
		{"Coins Converted to Fiat", fmt.Sprintf("%.2f", summary.TotalConverted)},
		{"Coins Refunded", fmt.Sprintf("%.2f", summary.TotalRefunded)},
		{"Active Users", fmt.Sprintf("%d", summary.TotalUsers)},
		{"Net Coin Flow", fmt.Sprintf("%.2f", summary.NetCoinFlow)},
	}
	for _, data := range summaryData {
		pdf.CellFormat(60, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transaction_report_%s.pdf", period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", period)
}
