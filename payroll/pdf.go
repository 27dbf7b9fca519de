package payroll

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const (
	labelWidth  = 120
	amountWidth = 60
	rowHeight   = 7
)

// RenderPayslip writes an A4 pay advice for one record.
func RenderPayslip(w io.Writer, company Company, emp Employee, rec Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %s", emp.Name, PeriodLabel(rec.Month, rec.Year)), true)
	pdf.AddPage()

	header(pdf, company, "PAY ADVICE")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Employee: %s", emp.Name))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("NRIC: %s    Position: %s", emp.NRIC, emp.Position))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Period: %s    Working days: %d", PeriodLabel(rec.Month, rec.Year), rec.WorkingDays))
	pdf.Ln(rowHeight + 3)

	section(pdf, "Earnings")
	row(pdf, "Basic salary", rec.BasicSalary)
	row(pdf, "Allowance", rec.Allowance)
	row(pdf, "Bonus", rec.Bonus)
	row(pdf, "Overtime", rec.Overtime)
	if rec.UnpaidLeaveDeduction.IsPositive() {
		row(pdf, fmt.Sprintf("Unpaid leave (%s days)", rec.UnpaidLeaveDays), rec.UnpaidLeaveDeduction.Neg())
	}
	totalRow(pdf, "Gross salary", rec.GrossSalary)

	section(pdf, "Deductions")
	row(pdf, "EPF (employee)", rec.EPFEmployee)
	row(pdf, "SOCSO (employee)", rec.SOCSOEmployee)
	row(pdf, "EIS (employee)", rec.EISEmployee)
	row(pdf, "PCB", rec.PCB)
	row(pdf, "Other deductions", rec.OtherDeductions)
	totalRow(pdf, "Net salary", rec.NetSalary)

	section(pdf, "Employer contributions")
	row(pdf, "EPF (employer)", rec.EPFEmployer)
	row(pdf, "SOCSO (employer)", rec.SOCSOEmployer)
	row(pdf, "EIS (employer)", rec.EISEmployer)

	status := "UNPAID"
	if rec.IsPaid {
		status = "PAID"
	}
	pdf.Ln(rowHeight)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Status: %s. Bank account: %s", status, emp.BankAccountNumber))

	return pdf.Output(w)
}

// RenderEAForm writes the yearly remuneration statement.
func RenderEAForm(w io.Writer, form EAForm) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("EA Form %d %s", form.Year, form.Employee.Name), true)
	pdf.AddPage()

	header(pdf, form.Company, fmt.Sprintf("EA FORM - YEAR OF REMUNERATION %d", form.Year))
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Employee: %s", form.Employee.Name))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("NRIC: %s    Tax no: %s    EPF no: %s",
		form.Employee.NRIC, form.Employee.TaxNumber, form.Employee.EPFNumber))
	pdf.Ln(rowHeight)
	pdf.Cell(0, rowHeight, fmt.Sprintf("Months paid: %s", monthList(form.MonthsPaid)))
	pdf.Ln(rowHeight + 3)

	section(pdf, "Remuneration")
	totalRow(pdf, "Total gross remuneration", form.Gross)

	section(pdf, "Statutory deductions (employee share)")
	row(pdf, "EPF", form.EPF)
	row(pdf, "SOCSO", form.SOCSO)
	row(pdf, "EIS", form.EIS)
	totalRow(pdf, "Total PCB (MTD) deducted", form.PCB)

	return pdf.Output(w)
}

func header(pdf *gofpdf.Fpdf, company Company, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, strings.ToUpper(company.Name))
	pdf.Ln(8)
	if company.RegistrationNumber != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, company.RegistrationNumber)
		pdf.Ln(8)
	}
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth+amountWidth, rowHeight, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func row(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.CellFormat(labelWidth, rowHeight, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, formatRM(amount), "", 1, "R", false, 0, "")
}

func totalRow(pdf *gofpdf.Fpdf, label string, amount decimal.Decimal) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(labelWidth, rowHeight, label, "T", 0, "L", false, 0, "")
	pdf.CellFormat(amountWidth, rowHeight, formatRM(amount), "T", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
}

func formatRM(d decimal.Decimal) string {
	return "RM " + d.StringFixed(2)
}

func monthList(months []int) string {
	if len(months) == 0 {
		return "none"
	}
	names := make([]string, len(months))
	for i, m := range months {
		names[i] = time.Month(m).String()[:3]
	}
	return strings.Join(names, ", ")
}
