package receipt

import (
	"DentaBill/models"
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// Data carries everything the renderer needs for one receipt. Clinic fields
// fall back to placeholders when the tenant has not saved a profile.
type Data struct {
	ClinicName     string
	Dentists       []string
	OperatingHours string
	RegNo          string
	GSTNo          string
	LogoURL        string
	SignatureURL   string

	PatientName   string
	CreatedAt     time.Time
	Consultations []models.Consultation
}

// Row is one rendered line of the treatment table.
type Row struct {
	Index       int
	Description string
	Amount      string
}

// BuildRows converts bill line items into table rows. Items with a nil
// amount render as 0.00 rather than being dropped, so the table always
// matches what was entered.
func BuildRows(consultations []models.Consultation) []Row {
	rows := make([]Row, 0, len(consultations))
	for i, c := range consultations {
		var amount float64
		if c.Amount != nil {
			amount = *c.Amount
		}
		rows = append(rows, Row{
			Index:       i + 1,
			Description: c.Description,
			Amount:      FormatINR(amount),
		})
	}
	return rows
}

// FormatINR renders an amount with Indian digit grouping and two decimals:
// the last three integer digits form one group, the rest pair off
// (1234567.5 -> 12,34,567.50).
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	grouped := intPart
	if len(intPart) > 3 {
		head := intPart[:len(intPart)-3]
		tail := intPart[len(intPart)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		grouped = strings.Join(parts, ",") + "," + tail
	}

	if negative {
		return "-" + grouped + "." + decPart
	}
	return grouped + "." + decPart
}

// Filename builds the download filename for a receipt, replacing spaces in
// the patient name with underscores.
func Filename(patientName string) string {
	return strings.ReplaceAll(strings.TrimSpace(patientName), " ", "_") + "_bill.pdf"
}

// Total sums the line items the same way the bill model does.
func (d *Data) Total() float64 {
	var total float64
	for _, c := range d.Consultations {
		if c.Amount != nil {
			total += *c.Amount
		}
	}
	return total
}

// Render produces the receipt PDF. Branding image fetches are best effort:
// a logo or signature that cannot be downloaded is skipped, never a render
// failure.
func Render(data *Data) ([]byte, error) {
	clinicName := data.ClinicName
	if clinicName == "" {
		clinicName = "Dental Clinic"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	if data.LogoURL != "" {
		placeImage(pdf, data.LogoURL, "logo", 15, 10, 25, 25)
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetXY(15, 16)
	pdf.CellFormat(180, 8, strings.ToUpper(clinicName), "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	if len(data.Dentists) > 0 {
		pdf.SetXY(15, 23)
		pdf.CellFormat(180, 5, strings.Join(data.Dentists, " | "), "", 0, "C", false, 0, "")
	}
	if data.OperatingHours != "" {
		pdf.SetXY(15, 29)
		pdf.CellFormat(180, 5, data.OperatingHours, "", 0, "C", false, 0, "")
	}
	if data.RegNo != "" || data.GSTNo != "" {
		pdf.SetXY(15, 35)
		pdf.CellFormat(180, 5, fmt.Sprintf("Reg. No: %s | GST No: %s", data.RegNo, data.GSTNo), "", 0, "C", false, 0, "")
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.Line(15, 42, 195, 42)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(15, 46)
	pdf.CellFormat(180, 8, "DENTAL BILL / RECEIPT", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(15, 56)
	pdf.CellFormat(90, 6, fmt.Sprintf("Patient: %s", data.PatientName), "", 0, "L", false, 0, "")
	pdf.SetXY(150, 56)
	pdf.CellFormat(45, 6, fmt.Sprintf("Date: %s", data.CreatedAt.Format("02/01/2006")), "", 0, "L", false, 0, "")

	finalY := renderTable(pdf, BuildRows(data.Consultations))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(100, finalY+10)
	pdf.CellFormat(50, 7, "Total Amount:", "", 0, "L", false, 0, "")
	pdf.SetXY(140, finalY+10)
	pdf.CellFormat(45, 7, "INR "+FormatINR(data.Total()), "", 0, "R", false, 0, "")

	footerY := finalY + 25
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(15, footerY)
	pdf.CellFormat(100, 5, fmt.Sprintf("Thank you for choosing %s!", clinicName), "", 0, "L", false, 0, "")
	pdf.SetXY(15, footerY+6)
	pdf.CellFormat(120, 5, "Please revisit every 6 months for routine dental check-up.", "", 0, "L", false, 0, "")

	if data.SignatureURL != "" {
		placeImage(pdf, data.SignatureURL, "signature", 140, footerY+10, 40, 20)
	}
	pdf.Line(130, footerY+32, 185, footerY+32)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(130, footerY+34)
	pdf.CellFormat(55, 5, "Authorized Dentist Signature", "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetXY(15, 282)
	pdf.CellFormat(180, 5, "This is a computer-generated bill and does not require a physical signature.", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// renderTable draws the treatment table starting at y=68 and returns the y
// position after the last row.
func renderTable(pdf *fpdf.Fpdf, rows []Row) float64 {
	const (
		startY    = 68.0
		colIndex  = 12.0
		colDesc   = 118.0
		colAmount = 45.0
		rowHeight = 8.0
		tableLeft = 15.0
	)

	pdf.SetXY(tableLeft, startY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(63, 81, 181)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(colIndex, rowHeight, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colDesc, rowHeight, "Treatment / Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colAmount, rowHeight, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	y := startY + rowHeight
	for _, row := range rows {
		pdf.SetXY(tableLeft, y)
		pdf.CellFormat(colIndex, rowHeight, fmt.Sprintf("%d", row.Index), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colDesc, rowHeight, row.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colAmount, rowHeight, row.Amount, "1", 1, "R", false, 0, "")
		y += rowHeight
	}
	return y
}

// placeImage fetches a remote branding image and draws it at the given box.
// Failures are logged and skipped.
func placeImage(pdf *fpdf.Fpdf, url, name string, x, y, w, h float64) {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		log.Printf("Failed to fetch %s image: %v", name, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("Failed to fetch %s image: status %d", name, resp.StatusCode)
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		log.Printf("Failed to read %s image: %v", name, err)
		return
	}

	imageType := detectImageType(resp.Header.Get("Content-Type"), url)
	if imageType == "" {
		log.Printf("Unsupported %s image format", name)
		return
	}

	opts := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(body))
	if pdf.Err() {
		log.Printf("Failed to register %s image: %v", name, pdf.Error())
		pdf.ClearError()
		return
	}
	pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
}

func detectImageType(contentType, url string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	}
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return "PNG"
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return "JPG"
	}
	return ""
}
