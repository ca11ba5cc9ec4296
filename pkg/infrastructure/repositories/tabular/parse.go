package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-06",
	"02-Jan-2006",
}

// ParseInventory converts raw records into inventory rows. headerRow is the
// 1-based index of the header record; data starts on the next record. Cells
// that fail to parse become zero values and are logged.
func ParseInventory(records [][]string, headerRow int, source string, logger *zap.Logger) ([]*entities.InventoryRow, error) {
	header, data, err := splitHeader(records, headerRow, source)
	if err != nil {
		return nil, err
	}
	if err := header.Require(source, InventoryColumns...); err != nil {
		return nil, err
	}

	rows := make([]*entities.InventoryRow, 0, len(data))
	for i, record := range data {
		if isBlank(record) {
			continue
		}
		line := headerRow + i + 1

		row := &entities.InventoryRow{
			Position:        len(rows),
			Item:            entities.ItemCode(header.Value(record, ColItem)),
			ItemDescription: header.Value(record, ColItemDescription),
			PO:              entities.POCode(header.Value(record, ColPO)),
			LotNumber:       header.Value(record, ColLot),
			ContainerNumber: header.Value(record, ColContainer),
			Subinventory:    header.Value(record, ColSubinventory),
			InvOrg:          header.Value(record, ColInvOrg),
			CarrierAssigned: header.Value(record, ColCarrierAssigned),
			PPM:             header.Value(record, ColPPM),
		}

		row.QtyAvailable = tolerantDecimal(header.Value(record, ColQtyAvailable), ColQtyAvailable, source, line, logger)
		row.UnitCost = tolerantDecimal(header.Value(record, ColUnitCost), ColUnitCost, source, line, logger)

		expiration, err := ParseDate(header.Value(record, ColExpiration))
		if err != nil {
			logger.Debug("unparseable expiration date",
				zap.String("source", source), zap.Int("row", line), zap.Error(err))
		}
		row.ExpirationDate = expiration

		row.Normalize()
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseCarriers converts raw manifest records into carrier rows. Rows without
// a container number are dropped and duplicates keep the first occurrence.
func ParseCarriers(records [][]string, headerRow int, source string, logger *zap.Logger) ([]*entities.CarrierRow, error) {
	header, data, err := splitHeader(records, headerRow, source)
	if err != nil {
		return nil, err
	}
	if err := header.Require(source, ManifestColumns...); err != nil {
		return nil, err
	}

	rows := make([]*entities.CarrierRow, 0, len(data))
	for i, record := range data {
		if isBlank(record) {
			continue
		}

		row, err := entities.NewCarrierRow(
			header.Value(record, ColManifestContainer),
			entities.SCAC(header.Value(record, ColManifestSCAC)),
			header.Value(record, ColManifestVessel),
		)
		if err != nil {
			logger.Debug("skipping manifest row",
				zap.String("source", source), zap.Int("row", headerRow+i+1), zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	unique := entities.DeduplicateCarrierRows(rows)
	if dropped := len(rows) - len(unique); dropped > 0 {
		logger.Debug("dropped duplicate manifest containers",
			zap.String("source", source), zap.Int("dropped", dropped))
	}
	return unique, nil
}

// ParseDecimal parses a numeric cell, accepting thousands separators and a
// currency sign. An empty cell is zero.
func ParseDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", "$", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", s)
	}
	return d, nil
}

// ParseDate parses a date cell written either as an Excel serial number or in
// one of the common textual layouts. An empty cell is the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", s, err)
		}
		return t, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func splitHeader(records [][]string, headerRow int, source string) (Header, [][]string, error) {
	if headerRow < 1 {
		return nil, nil, fmt.Errorf("header row must be 1 or greater, got %d", headerRow)
	}
	if len(records) < headerRow {
		return nil, nil, fmt.Errorf("%s has %d rows, header expected on row %d", source, len(records), headerRow)
	}
	return NewHeader(records[headerRow-1]), records[headerRow:], nil
}

func tolerantDecimal(raw, column, source string, line int, logger *zap.Logger) decimal.Decimal {
	d, err := ParseDecimal(raw)
	if err != nil {
		logger.Debug("unparseable numeric cell",
			zap.String("source", source), zap.String("column", column), zap.Int("row", line), zap.Error(err))
	}
	return d
}
