package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/events"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/tabular"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	Out    io.Writer
}

// Generate renders a report in the configured format. report is one of the
// dto report types.
func Generate(report interface{}, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	switch config.Format {
	case "", "text":
		return generateTextOutput(report, config.Out)
	case "json":
		return generateJSONOutput(report, config.Out)
	case "csv":
		return generateCSVOutput(report, config.Out)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// Events renders an audit trail, one event per line
func Events(trail []events.Event, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.Format == "json" {
		return generateJSONOutput(trail, config.Out)
	}

	fmt.Fprintf(config.Out, "Audit trail (%d events):\n", len(trail))
	for _, e := range trail {
		data, err := json.Marshal(e.Data())
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", e.Type(), err)
		}
		fmt.Fprintf(config.Out, "  %3d %-20s %s\n", e.Sequence(), e.Type(), data)
	}
	return nil
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report interface{}, w io.Writer) error {
	switch r := report.(type) {
	case *dto.AnnotationResult:
		writeAnnotationText(r, w)
	case *dto.LookupResult:
		fmt.Fprintf(w, "%s lookup for %q", r.Kind, r.Token)
		if r.Warehouse != "" {
			fmt.Fprintf(w, " in %s", r.Warehouse)
		}
		fmt.Fprintf(w, ": %d rows\n\n", len(r.Rows))
		writeRowsText(r.Rows, w)
	case *dto.ExpiringReport:
		fmt.Fprintf(w, "Lots expired before %s: %d\n\n", r.Today.Format("2006-01-02"), len(r.Rows))
		writeRowsText(r.Rows, w)
	case *dto.CostRollup:
		writeCostText(r, w)
	case *dto.BookingPivot:
		fmt.Fprintf(w, "ISO containers by product manager (lot size %s)\n\n", r.LotSize)
		writeLotsText("Booked", r.Booked, w)
		writeLotsText("Not booked", r.NotBooked, w)
	case *dto.CarrierLookup:
		fmt.Fprintf(w, "Manifest containers matching %q: %d\n", r.Fragment, len(r.Carriers))
		if len(r.Carriers) > 0 {
			fmt.Fprintf(w, "%-15s %-6s %s\n", "Container", "SCAC", "Vessel")
			for _, c := range r.Carriers {
				fmt.Fprintf(w, "%-15s %-6s %s\n", c.ContainerNumber, c.SCAC, c.Vessel)
			}
		}
	default:
		return fmt.Errorf("no text rendering for %T", report)
	}
	return nil
}

func writeAnnotationText(r *dto.AnnotationResult, w io.Writer) {
	fmt.Fprintf(w, "Annotation run %s\n", r.RunID)
	fmt.Fprintf(w, "====================\n\n")
	fmt.Fprintf(w, "Inventory rows:       %d\n", r.TotalRows)
	fmt.Fprintf(w, "Matched rows:         %d\n", r.MatchedRows)
	fmt.Fprintf(w, "Unmatched rows:       %d\n", r.UnmatchedRows)
	fmt.Fprintf(w, "Unmatched containers: %d\n", len(r.UnmatchedCarriers))
	fmt.Fprintf(w, "Conflicts:            %d\n\n", len(r.Conflicts))

	if len(r.Groups) > 0 {
		fmt.Fprintf(w, "%-6s %-11s %-5s\n", "SCAC", "Containers", "Rows")
		fmt.Fprintf(w, "%-6s %-11s %-5s\n", "------", "-----------", "-----")
		for _, g := range r.Groups {
			fmt.Fprintf(w, "%-6s %-11d %-5d\n", g.SCAC, len(g.ContainerNumbers), len(g.Positions))
		}
		fmt.Fprintln(w)
	}

	for _, c := range r.Conflicts {
		fmt.Fprintf(w, "row %d: %s overwritten by %s\n", c.Position, c.Previous, c.Winner)
	}
}

func writeRowsText(rows []*entities.InventoryRow, w io.Writer) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "%-12s %-12s %-10s %-25s %-15s %-8s %12s %-6s %-10s %s\n",
		"Item", "PO", "Lot #", "Container#", "Subinventory", "Inv Org", "Qty", "SCAC", "Expires", "PPM")
	for _, row := range rows {
		expires := ""
		if row.HasExpiration() {
			expires = row.ExpirationDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%-12s %-12s %-10s %-25s %-15s %-8s %12s %-6s %-10s %s\n",
			row.Item, row.PO, row.LotNumber, row.ContainerNumber, row.Subinventory,
			row.InvOrg, row.QtyAvailable, row.SCAC, expires, row.PPM)
	}
}

func writeCostText(r *dto.CostRollup, w io.Writer) {
	p := message.NewPrinter(language.English)
	for _, item := range r.Items {
		fmt.Fprintf(w, "Total cost of %s is %s\n", item.Item, formatMoney(p, item.Total))
	}
	fmt.Fprintf(w, "Total sum is ......... %s\n", formatMoney(p, r.Total))
}

func writeLotsText(title string, lots []dto.PPMQuantity, w io.Writer) {
	fmt.Fprintf(w, "%s:\n", title)
	if len(lots) == 0 {
		fmt.Fprintf(w, "  (none)\n\n")
		return
	}
	for _, q := range lots {
		fmt.Fprintf(w, "  %-30s %s\n", q.PPM, q.Lots)
	}
	fmt.Fprintln(w)
}

func formatMoney(p *message.Printer, d decimal.Decimal) string {
	return p.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report interface{}, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// generateCSVOutput creates CSV output
func generateCSVOutput(report interface{}, w io.Writer) error {
	var records [][]string

	switch r := report.(type) {
	case *dto.AnnotationResult:
		records = append(records, []string{"SCAC", "Container Numbers", "Positions"})
		for _, g := range r.Groups {
			positions := make([]string, len(g.Positions))
			for i, p := range g.Positions {
				positions[i] = fmt.Sprint(p)
			}
			records = append(records, []string{
				g.SCAC.String(), strings.Join(g.ContainerNumbers, ";"), strings.Join(positions, ";"),
			})
		}
	case *dto.LookupResult:
		records = annotatedRecords(r.Rows)
	case *dto.ExpiringReport:
		records = annotatedRecords(r.Rows)
	case *dto.CostRollup:
		records = append(records, []string{"Item", "Total Cost"})
		for _, item := range r.Items {
			records = append(records, []string{string(item.Item), item.Total.StringFixed(2)})
		}
		records = append(records, []string{"Total", r.Total.StringFixed(2)})
	case *dto.BookingPivot:
		records = append(records, []string{"Status", "PPM", "Lots"})
		for _, q := range r.Booked {
			records = append(records, []string{"Booked", q.PPM, q.Lots.String()})
		}
		for _, q := range r.NotBooked {
			records = append(records, []string{"Not Booked", q.PPM, q.Lots.String()})
		}
	case *dto.CarrierLookup:
		records = append(records, append([]string(nil), tabular.ManifestColumns...))
		for _, c := range r.Carriers {
			records = append(records, []string{c.ContainerNumber, c.SCAC.String(), c.Vessel})
		}
	default:
		return fmt.Errorf("no CSV rendering for %T", report)
	}

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func annotatedRecords(rows []*entities.InventoryRow) [][]string {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, tabular.AnnotatedHeader)
	for _, row := range rows {
		records = append(records, tabular.AnnotatedRecord(row))
	}
	return records
}
