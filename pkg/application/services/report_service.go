package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
)

const (
	// DefaultLotSize is the quantity of one ISO container load
	DefaultLotSize = 20000

	// poDigitCount is the number of digits every purchase order code carries
	poDigitCount = 6

	isoMarker       = "ISO"
	notBookedMarker = "Not"
)

// ReportService derives reporting views from an annotated inventory
type ReportService struct {
	lotSize decimal.Decimal
	now     func() time.Time
}

// NewReportService creates a report service. A non-positive lotSize falls
// back to DefaultLotSize.
func NewReportService(lotSize int64) *ReportService {
	if lotSize <= 0 {
		lotSize = DefaultLotSize
	}
	return &ReportService{
		lotSize: decimal.NewFromInt(lotSize),
		now:     time.Now,
	}
}

// ClassifyToken reports whether a lookup token is a purchase order code (it
// holds exactly six digits) or an item code
func ClassifyToken(token string) dto.LookupKind {
	digits := 0
	for _, r := range token {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits == poDigitCount {
		return dto.LookupByPO
	}
	return dto.LookupByItem
}

// Lookup returns rows whose PO or item contains token, optionally restricted to
// warehouses whose Inv Org contains warehouse. Both arguments are
// case-insensitive. Rows are sorted by subinventory, descending.
func (s *ReportService) Lookup(repo repositories.InventoryRepository, token, warehouse string) (*dto.LookupResult, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	warehouse = strings.ToUpper(strings.TrimSpace(warehouse))
	if token == "" {
		return nil, fmt.Errorf("lookup token cannot be empty")
	}

	rows, err := repo.GetAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	result := &dto.LookupResult{
		Token:     token,
		Warehouse: warehouse,
		Kind:      ClassifyToken(token),
	}

	for _, row := range rows {
		field := string(row.Item)
		if result.Kind == dto.LookupByPO {
			field = string(row.PO)
		}
		if strings.Contains(strings.ToUpper(field), token) &&
			strings.Contains(strings.ToUpper(row.InvOrg), warehouse) {
			result.Rows = append(result.Rows, row)
		}
	}

	sort.SliceStable(result.Rows, func(i, j int) bool {
		return result.Rows[i].Subinventory > result.Rows[j].Subinventory
	})

	return result, nil
}

// ExpiringLots returns rows whose expiration date is strictly before today,
// sorted by product manager. A zero today means the current date.
func (s *ReportService) ExpiringLots(repo repositories.InventoryRepository, today time.Time) (*dto.ExpiringReport, error) {
	if today.IsZero() {
		today = s.now()
	}

	rows, err := repo.GetAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	report := &dto.ExpiringReport{Today: today}
	for _, row := range rows {
		if row.ExpiresBefore(today) {
			report.Rows = append(report.Rows, row)
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].PPM < report.Rows[j].PPM
	})

	return report, nil
}

// CostRollup lists the items owned by product managers whose name contains pm
// and totals each item over every inventory row carrying it, whoever manages
// the row. Items with a non-positive total are left out of the list and the
// grand total.
func (s *ReportService) CostRollup(repo repositories.InventoryRepository, pm string) (*dto.CostRollup, error) {
	needle := strings.ToLower(strings.TrimSpace(pm))
	if needle == "" {
		return nil, fmt.Errorf("product manager cannot be empty")
	}

	rows, err := repo.GetAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	totals := make(map[entities.ItemCode]decimal.Decimal)
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.PPM), needle) {
			totals[row.Item] = decimal.Zero
		}
	}
	for _, row := range rows {
		if total, ok := totals[row.Item]; ok {
			totals[row.Item] = total.Add(row.TotalCost)
		}
	}

	items := make([]entities.ItemCode, 0, len(totals))
	for item := range totals {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i] < items[j] })

	rollup := &dto.CostRollup{PPM: pm, Total: decimal.Zero}
	for _, item := range items {
		total := totals[item]
		if !total.IsPositive() {
			continue
		}
		rollup.Items = append(rollup.Items, dto.ItemCost{Item: item, Total: total})
		rollup.Total = rollup.Total.Add(total)
	}

	return rollup, nil
}

// BookingPivot partitions ISO container stock by product manager.
//
// Booked rows carry a lot number and a subinventory without "Not"; not booked
// rows carry no lot number and a subinventory containing "Not". Quantities are
// expressed in container loads, rounded half to even.
func (s *ReportService) BookingPivot(repo repositories.InventoryRepository) (*dto.BookingPivot, error) {
	rows, err := repo.GetAllRows()
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory: %w", err)
	}

	booked := make(map[string]decimal.Decimal)
	notBooked := make(map[string]decimal.Decimal)

	for _, row := range rows {
		if row.PPM == "" || !strings.Contains(row.ItemDescription, isoMarker) {
			continue
		}
		markedNot := strings.Contains(row.Subinventory, notBookedMarker)

		switch {
		case row.HasLot() && !markedNot:
			booked[row.PPM] = booked[row.PPM].Add(row.QtyAvailable)
		case !row.HasLot() && markedNot:
			notBooked[row.PPM] = notBooked[row.PPM].Add(row.QtyAvailable)
		}
	}

	return &dto.BookingPivot{
		LotSize:   s.lotSize,
		Booked:    s.toLots(booked),
		NotBooked: s.toLots(notBooked),
	}, nil
}

// FindCarriers returns manifest rows whose container number contains fragment
func (s *ReportService) FindCarriers(repo repositories.CarrierRepository, fragment string) (*dto.CarrierLookup, error) {
	carriers, err := repo.FindByContainer(fragment)
	if err != nil {
		return nil, err
	}
	return &dto.CarrierLookup{Fragment: fragment, Carriers: carriers}, nil
}

func (s *ReportService) toLots(quantities map[string]decimal.Decimal) []dto.PPMQuantity {
	lots := make([]dto.PPMQuantity, 0, len(quantities))
	for ppm, qty := range quantities {
		lots = append(lots, dto.PPMQuantity{
			PPM:  ppm,
			Lots: qty.Div(s.lotSize).RoundBank(0),
		})
	}

	sort.Slice(lots, func(i, j int) bool {
		if !lots[i].Lots.Equal(lots[j].Lots) {
			return lots[i].Lots.GreaterThan(lots[j].Lots)
		}
		return lots[i].PPM < lots[j].PPM
	})
	return lots
}
