package entities

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewInventoryRow_DerivedFields(t *testing.T) {
	row, err := NewInventoryRow(0, "CHDM-001", " MSCU 1234567; ", decimal.NewFromInt(10), decimal.RequireFromString("2.50"))
	if err != nil {
		t.Fatalf("Expected valid row creation to succeed: %v", err)
	}

	if !row.TotalCost.Equal(decimal.RequireFromString("25.00")) {
		t.Errorf("Expected total cost 25.00, got %s", row.TotalCost)
	}
	if row.ContainerNumber != "MSCU1234567" {
		t.Errorf("Expected normalized container MSCU1234567, got %q", row.ContainerNumber)
	}
	if row.SCAC != UnsetSCAC {
		t.Errorf("Expected SCAC to start unset, got %q", row.SCAC)
	}

	_, err = NewInventoryRow(-1, "CHDM-001", "", decimal.Zero, decimal.Zero)
	if err == nil || err.Error() != "position cannot be negative, got -1" {
		t.Errorf("Expected negative position error, got %v", err)
	}
}

func TestNormalizeContainerNumber(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{"trailing semicolon", "TGHU8000011;", "TGHU8000011"},
		{"surrounding whitespace", "  TGHU8000011  ", "TGHU8000011"},
		{"interior spaces", "TGHU 800 0011", "TGHU8000011"},
		{"several containers", "TGHU8000011;MSCU1234567;", "TGHU8000011;MSCU1234567"},
		{"no stray character", "TGHU8000011", "TGHU8000011"},
		{"only separator", ";", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeContainerNumber(tc.raw); got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestInventoryRow_ExpiresBefore(t *testing.T) {
	today := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		expiration time.Time
		expected   bool
	}{
		{"day before", time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC), true},
		{"same day", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false},
		{"day after", time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), false},
		{"no date", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			row := InventoryRow{ExpirationDate: tc.expiration}
			if got := row.ExpiresBefore(today); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestInventoryRow_MarshalJSON_ExpirationDate(t *testing.T) {
	row, err := NewInventoryRow(0, "TEP", "ZIMU1112223;", decimal.NewFromInt(5), decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("Expected valid row creation to succeed: %v", err)
	}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Failed to marshal row: %v", err)
	}
	if strings.Contains(string(data), "expiration_date") {
		t.Errorf("Expected no expiration_date for an undated row, got %s", data)
	}
	if !strings.Contains(string(data), `"container_number":"ZIMU1112223"`) {
		t.Errorf("Expected container number in output, got %s", data)
	}

	row.ExpirationDate = time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(row)
	if err != nil {
		t.Fatalf("Failed to marshal row: %v", err)
	}
	if !strings.Contains(string(data), `"expiration_date":"2024-01-09T00:00:00Z"`) {
		t.Errorf("Expected expiration_date 2024-01-09, got %s", data)
	}

	var decoded InventoryRow
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal row: %v", err)
	}
	if !decoded.ExpirationDate.Equal(row.ExpirationDate) {
		t.Errorf("Expected decoded date %v, got %v", row.ExpirationDate, decoded.ExpirationDate)
	}
}

func TestInventoryRow_HasLot(t *testing.T) {
	if (&InventoryRow{LotNumber: "  "}).HasLot() {
		t.Error("Expected blank lot number to count as absent")
	}
	if !(&InventoryRow{LotNumber: "L-77"}).HasLot() {
		t.Error("Expected L-77 to count as a lot")
	}
}

func TestSCAC_IsSet(t *testing.T) {
	if UnsetSCAC.IsSet() {
		t.Error("Expected UnsetSCAC to be unset")
	}
	if SCAC("").IsSet() {
		t.Error("Expected empty SCAC to be unset")
	}
	if !SCAC("ZIMU").IsSet() {
		t.Error("Expected ZIMU to be set")
	}
}
