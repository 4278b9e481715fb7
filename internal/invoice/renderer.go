package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/config"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/premium"
)

// defaultHSN is the classification code printed for every line item. All
// insured consignments are fresh produce, so a single chapter code suffices.
const defaultHSN = "0801"

// paymentTerms is the fixed terms line under the invoice metadata.
const paymentTerms = "Due on receipt"

// legalTerms is the free-text block printed at the bottom of every invoice.
const legalTerms = "Transit insurance covers loss or damage of the declared produce between " +
	"the listed origin and destination mandis only. Coverage begins once the premium is paid " +
	"and ends on delivery at the destination. Claims require the vehicle number and this " +
	"invoice number. Premium is 0.2% of the declared consignment value and is non-refundable " +
	"after dispatch."

// Renderer produces the invoice PDF for an approved request.
type Renderer struct {
	Company config.CompanyConfig
	// OutDir is where rendered PDFs are written, named FileName(invoiceNo).
	OutDir string
	// Images resolves the embedded reference photo; nil disables embedding.
	Images *ImageFetcher
}

// FileName returns the artifact name for an invoice number. The invoice
// number is the storage key; the serving path is derived from it.
func FileName(invoiceNo string) string { return invoiceNo + ".pdf" }

// Render draws the invoice for req (an approved snapshot) with the assigned
// invoice number and finalized premium, writes it to OutDir, and returns the
// written file path. Any failure is returned as a renderer-level error; the
// caller treats it as non-fatal for the approval itself.
func (r *Renderer) Render(req *domain.InsuranceRequest, invoiceNo string, prem decimal.Decimal) (string, error) {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}

	en := message.NewPrinter(language.English)
	rate, _ := req.Rate.Float64()
	total, _ := premium.Total(req.Quantity, req.Rate).Float64()
	premF, _ := prem.Float64()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(invoiceNo, false)
	pdf.AddPage()

	// Header / branding.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 9, r.Company.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, r.Company.Address, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+r.Company.Phone, "", 1, "L", false, 0, "")
	if r.Company.GSTIN != "" {
		pdf.CellFormat(0, 5, "GSTIN: "+r.Company.GSTIN, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Invoice metadata.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "TRANSIT INSURANCE INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 6, "Invoice No: "+invoiceNo, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+time.Now().Format("02 Jan 2006"), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, "Terms: "+paymentTerms, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Supplier and consignor blocks.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, 6, "Insurer", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Consignor", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(95, 5, r.Company.Name, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, nonEmpty(req.FarmerName, "Farmer"), "", 1, "L", false, 0, "")
	pdf.CellFormat(95, 5, r.Company.Address, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Phone: "+req.Phone, "", 1, "L", false, 0, "")
	route := routeLine(req.Origin, req.Destination)
	if route != "" || req.VehicleNo != "" {
		pdf.CellFormat(95, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, joinNonEmpty(route, vehicleLine(req.VehicleNo)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)

	// Line item table.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(70, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "HSN", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Rate (Rs)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Amount (Rs)", "1", 1, "R", true, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(70, 7, req.ItemName, "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, defaultHSN, "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, en.Sprintf("%d", req.Quantity), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, en.Sprintf("%.2f", rate), "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, en.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")

	// Totals block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(150, 7, "Consignment value", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Rs "+en.Sprintf("%.2f", total), "1", 1, "R", false, 0, "")
	pdf.CellFormat(150, 7, "Insurance premium (0.2%)", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Rs "+en.Sprintf("%.2f", premF), "1", 1, "R", false, 0, "")
	pdf.Ln(5)

	// Reference photo, best effort.
	r.drawImage(pdf, req)

	// Legal / insurance terms.
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.MultiCell(0, 4, legalTerms, "", "L", false)

	out := filepath.Join(r.OutDir, FileName(invoiceNo))
	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", fmt.Errorf("render invoice: %w", err)
	}
	return out, nil
}

// drawImage embeds the reference photo when one can be acquired, otherwise
// prints the textual placeholder. Never fails the render.
func (r *Renderer) drawImage(pdf *gofpdf.Fpdf, req *domain.InsuranceRequest) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Reference photo", "", 1, "L", false, 0, "")

	if r.Images != nil {
		path, cleanup, ok := r.Images.Fetch(req.ImageURL, req.ID, req.Phone)
		if ok {
			defer cleanup()
			opts := gofpdf.ImageOptions{ReadDpi: true}
			pdf.ImageOptions(path, pdf.GetX(), pdf.GetY(), 60, 0, true, opts, 0, "")
			if pdf.Err() {
				// Bad image bytes: clear the error and fall through to the
				// placeholder so the rest of the document still renders.
				pdf.ClearError()
			} else {
				return
			}
		}
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Photo not available", "", 1, "L", false, 0, "")
}

func nonEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func routeLine(origin, destination string) string {
	switch {
	case origin != "" && destination != "":
		return origin + " to " + destination
	case origin != "":
		return "From " + origin
	case destination != "":
		return "To " + destination
	default:
		return ""
	}
}

func vehicleLine(vehicleNo string) string {
	if vehicleNo == "" {
		return ""
	}
	return "Vehicle " + vehicleNo
}

func joinNonEmpty(a, b string) string {
	switch {
	case a != "" && b != "":
		return a + ", " + b
	case a != "":
		return a
	default:
		return b
	}
}
