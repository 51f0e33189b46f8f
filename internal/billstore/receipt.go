package billstore

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/divan/num2words"
	"github.com/xuri/excelize/v2"

	"github.com/abdaljehan03-maker/clinic-project/internal/clinic"
)

// Receipt is the printable spreadsheet companion to an individual bill
// file: the same bill text plus the amount in words and the
// prescription note. Nothing downstream depends on it.
type Receipt struct {
	PatientName  string
	BillText     string
	Total        float64
	Prescription string
}

// SaveReceipt writes the .xlsx companion next to the individual bill
// file and returns its path.
func (s *Store) SaveReceipt(r Receipt, at time.Time) (string, error) {
	dateDir := filepath.Join(s.billsDir, at.Format("2006-01-02"))
	if err := os.MkdirAll(dateDir, 0o755); err != nil {
		return "", clinic.Persistf("save receipt", err)
	}
	name := fmt.Sprintf("%s_bill_%s.xlsx", sanitizeName(r.PatientName), at.Format("20060102_150405"))
	path := filepath.Join(dateDir, name)

	file := excelize.NewFile()
	defer file.Close()
	sheet := "Receipt"
	file.SetSheetName("Sheet1", sheet)
	file.SetColWidth(sheet, "A", "A", 60)

	row := 1
	for _, line := range strings.Split(r.BillText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), line)
		row++
	}
	row++
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Amount in words: "+AmountInWords(r.Total))
	row += 2
	file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "===== Prescription =====")
	row++
	prescription := strings.TrimSpace(r.Prescription)
	if prescription == "" {
		file.SetCellValue(sheet, fmt.Sprintf("A%d", row), "(No prescription entered)")
	} else {
		for _, line := range strings.Split(prescription, "\n") {
			file.SetCellValue(sheet, fmt.Sprintf("A%d", row), line)
			row++
		}
	}

	if err := file.SaveAs(path); err != nil {
		return "", clinic.Persistf("save receipt", err)
	}
	return path, nil
}

// AmountInWords spells a rupee amount for the receipt footer. Fractions
// are reported as paise so the wording stays integer-only.
func AmountInWords(amount float64) string {
	rupees := int(amount)
	paise := int(math.Round((amount - float64(rupees)) * 100))
	if paise >= 100 {
		rupees++
		paise -= 100
	}
	words := strings.TrimSpace(num2words.Convert(rupees))
	if paise > 0 {
		return fmt.Sprintf("%s rupees and %02d paise", words, paise)
	}
	return words + " rupees"
}
