package clinic

import (
	"fmt"
	"strings"
	"time"
)

const (
	sectionRule = "---------------------------"
	closingRule = "==========================="
)

// Render serializes the party's bill as canonical text, timestamp line
// first. The layout and the amount formatting are load-bearing: the
// combined log, the individual bill files and the search segmentation
// all consume this exact shape.
func (p *Party) Render(clinicName string, at time.Time) string {
	title := "BILL RECEIPT"
	nameLabel := "Patient Name"
	if p.Kind == PartyVIP {
		title = "VIP BILL RECEIPT"
		nameLabel = "VIP Patient Name"
	}

	lines := []string{
		fmt.Sprintf("Date & Time: %s", at.Format("2006-01-02 15:04:05")),
		"",
		fmt.Sprintf("===== %s =====", title),
		fmt.Sprintf("Clinic: %s", clinicName),
		fmt.Sprintf("%s: %s", nameLabel, p.Name),
		fmt.Sprintf("Phone: %s", p.Phone),
		sectionRule,
		"Treatments:",
	}
	if len(p.selections) == 0 {
		lines = append(lines, "- (No treatments selected)")
	} else {
		for _, s := range p.selections {
			lines = append(lines, fmt.Sprintf("- %s: Rs. %s", s.Name, FormatAmount(s.Price)))
		}
	}
	lines = append(lines, sectionRule)
	if p.Kind == PartyVIP {
		lines = append(lines,
			fmt.Sprintf("Original Total: Rs. %s", FormatAmount(p.RawTotal())),
			fmt.Sprintf("Discount: %s%%", FormatAmount(p.Discount)),
			fmt.Sprintf("Total Amount after Discount: Rs. %s", formatComputedAmount(p.Total())),
		)
	} else {
		lines = append(lines, fmt.Sprintf("Total Amount: Rs. %s", FormatAmount(p.Total())))
	}
	lines = append(lines, closingRule)
	return strings.Join(lines, "\n")
}
