package services

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/infrastructure/repositories/memory"
	testinghelpers "github.com/vsinha/scacmatch/pkg/infrastructure/testing"
)

func positions(rows []*entities.InventoryRow) []int {
	out := make([]int, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Position)
	}
	return out
}

func TestClassifyToken(t *testing.T) {
	tests := []struct {
		token string
		want  dto.LookupKind
	}{
		{"WEG002121", dto.LookupByPO},
		{"002121", dto.LookupByPO},
		{"CHDM-001", dto.LookupByItem},
		{"TEP", dto.LookupByItem},
		{"WEG0021210", dto.LookupByItem},
		{"", dto.LookupByItem},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyToken(tt.token))
		})
	}
}

func TestReportService_Lookup(t *testing.T) {
	inventoryRepo, _ := testinghelpers.BuildShipmentTestData()
	reports := NewReportService(0)

	tests := []struct {
		name      string
		token     string
		warehouse string
		kind      dto.LookupKind
		want      []int
	}{
		{"po sorted by subinventory descending", "WEG002121", "", dto.LookupByPO, []int{1, 0}},
		{"item is case insensitive", "chdm-001", "", dto.LookupByItem, []int{1, 0}},
		{"warehouse filter", "WEG002190", "w02", dto.LookupByPO, []int{3, 2}},
		{"warehouse excludes", "WEG002190", "W01", dto.LookupByPO, []int{}},
		{"partial item", "DOTP", "", dto.LookupByItem, []int{4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := reports.Lookup(inventoryRepo, tt.token, tt.warehouse)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, result.Kind)
			assert.Equal(t, tt.want, positions(result.Rows))
		})
	}

	_, err := reports.Lookup(inventoryRepo, "  ", "")
	assert.Error(t, err)
}

func TestReportService_ExpiringLots(t *testing.T) {
	inventoryRepo, _ := testinghelpers.BuildShipmentTestData()
	reports := NewReportService(0)

	report, err := reports.ExpiringLots(inventoryRepo, testinghelpers.Day(2024, 1, 10))
	require.NoError(t, err)

	// 2024-01-09 expired, 2024-01-10 has not, rows without a date never do
	assert.Equal(t, []int{0, 3}, positions(report.Rows))
	assert.Equal(t, "Amelia Greene", report.Rows[0].PPM)
	assert.Equal(t, "Jason LoPipero", report.Rows[1].PPM)

	reports.now = func() time.Time { return testinghelpers.Day(2030, 1, 1) }
	report, err = reports.ExpiringLots(inventoryRepo, time.Time{})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 4)
}

func TestReportService_CostRollup(t *testing.T) {
	inventoryRepo, _ := testinghelpers.BuildShipmentTestData()
	reports := NewReportService(0)

	rollup, err := reports.CostRollup(inventoryRepo, "amelia")
	require.NoError(t, err)

	want := []dto.ItemCost{
		{Item: "CHDM-001", Total: decimal.RequireFromString("25025")},
		{Item: "DOTP-77", Total: decimal.RequireFromString("50")},
	}
	if diff := cmp.Diff(want, rollup.Items, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("cost rollup items mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, rollup.Total.Equal(decimal.RequireFromString("25075")), "total %s", rollup.Total)

	rollup, err = reports.CostRollup(inventoryRepo, "LoPipero")
	require.NoError(t, err)
	require.Len(t, rollup.Items, 1)
	assert.True(t, rollup.Total.Equal(decimal.NewFromInt(20300)))

	rollup, err = reports.CostRollup(inventoryRepo, "nobody")
	require.NoError(t, err)
	assert.Empty(t, rollup.Items)
	assert.True(t, rollup.Total.IsZero())

	_, err = reports.CostRollup(inventoryRepo, "")
	assert.Error(t, err)
}

func TestReportService_CostRollup_SharedItemCountsEveryManager(t *testing.T) {
	repo := memory.NewInventoryRepository(3)
	require.NoError(t, repo.LoadRows([]*entities.InventoryRow{
		testinghelpers.Row("TEP", "TEP DRUMS", "WEG000001", "L1", "", "Dock", "W01", "10", "1", time.Time{}, "Amelia Greene"),
		testinghelpers.Row("TEP", "TEP DRUMS", "WEG000002", "L2", "", "Dock", "W01", "90", "1", time.Time{}, "Jason LoPipero"),
		testinghelpers.Row("TEP-X", "TEP FLEXI", "WEG000003", "L3", "", "Dock", "W01", "7", "1", time.Time{}, "Jason LoPipero"),
	}))

	rollup, err := NewReportService(0).CostRollup(repo, "amelia")
	require.NoError(t, err)

	require.Len(t, rollup.Items, 1)
	assert.Equal(t, entities.ItemCode("TEP"), rollup.Items[0].Item)
	assert.True(t, rollup.Items[0].Total.Equal(decimal.NewFromInt(100)), "TEP total %s", rollup.Items[0].Total)
	assert.True(t, rollup.Total.Equal(decimal.NewFromInt(100)), "total %s", rollup.Total)
}

func TestReportService_BookingPivot(t *testing.T) {
	inventoryRepo, _ := testinghelpers.BuildShipmentTestData()

	pivot, err := NewReportService(DefaultLotSize).BookingPivot(inventoryRepo)
	require.NoError(t, err)

	require.Len(t, pivot.Booked, 1)
	assert.Equal(t, "Amelia Greene", pivot.Booked[0].PPM)
	assert.True(t, pivot.Booked[0].Lots.Equal(decimal.NewFromInt(1)))

	require.Len(t, pivot.NotBooked, 1)
	assert.Equal(t, "Jason LoPipero", pivot.NotBooked[0].PPM)
	assert.True(t, pivot.NotBooked[0].Lots.Equal(decimal.NewFromInt(2)))
}

func TestReportService_BookingPivot_RoundsHalfToEvenAndSorts(t *testing.T) {
	day := testinghelpers.Day(2024, 1, 1)
	repo := memory.NewInventoryRepository(5)
	require.NoError(t, repo.LoadRows([]*entities.InventoryRow{
		testinghelpers.Row("A", "ISO", "WEG000001", "L1", "", "Dock", "W01", "50000", "1", day, "Beta"),
		testinghelpers.Row("A", "ISO", "WEG000001", "L2", "", "Dock", "W01", "30000", "1", day, "Alpha"),
		testinghelpers.Row("A", "ISO", "WEG000001", "L3", "", "Dock", "W01", "70000", "1", day, "Gamma"),
		// lot number under a "Not" subinventory belongs to neither side
		testinghelpers.Row("A", "ISO", "WEG000001", "L4", "", "Not Booked", "W01", "90000", "1", day, "Gamma"),
		// rows without a product manager are skipped
		testinghelpers.Row("A", "ISO", "WEG000001", "", "", "Not Booked", "W01", "90000", "1", day, ""),
	}))

	pivot, err := NewReportService(20000).BookingPivot(repo)
	require.NoError(t, err)

	got := make(map[string]string)
	var order []string
	for _, q := range pivot.Booked {
		got[q.PPM] = q.Lots.String()
		order = append(order, q.PPM)
	}

	// 2.5 -> 2, 1.5 -> 2, 3.5 -> 4
	assert.Equal(t, map[string]string{"Beta": "2", "Alpha": "2", "Gamma": "4"}, got)
	assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, order)
	assert.Empty(t, pivot.NotBooked)
}

func TestReportService_FindCarriers(t *testing.T) {
	_, carrierRepo := testinghelpers.BuildShipmentTestData()
	reports := NewReportService(0)

	lookup, err := reports.FindCarriers(carrierRepo, "zimu111")
	require.NoError(t, err)
	require.Len(t, lookup.Carriers, 2)
	assert.Equal(t, entities.SCAC("ZIMU"), lookup.Carriers[0].SCAC)

	_, err = reports.FindCarriers(carrierRepo, "")
	assert.Error(t, err)
}
