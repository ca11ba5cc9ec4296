package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/infrastructure/events"
	testinghelpers "github.com/vsinha/scacmatch/pkg/infrastructure/testing"
)

func render(t *testing.T, report interface{}, format string) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Generate(report, Config{Format: format, Out: &buf}))
	return buf.String()
}

func TestGenerate_CostText(t *testing.T) {
	rollup := &dto.CostRollup{
		PPM: "Amelia",
		Items: []dto.ItemCost{
			{Item: "CHDM-001", Total: decimal.RequireFromString("1234.5")},
			{Item: "DOTP-77", Total: decimal.RequireFromString("50")},
		},
		Total: decimal.RequireFromString("1284.5"),
	}

	out := render(t, rollup, "text")
	assert.Contains(t, out, "Total cost of CHDM-001 is 1,234.50\n")
	assert.Contains(t, out, "Total cost of DOTP-77 is 50.00\n")
	assert.Contains(t, out, "Total sum is ......... 1,284.50\n")
}

func TestGenerate_CostCSV(t *testing.T) {
	rollup := &dto.CostRollup{
		Items: []dto.ItemCost{{Item: "TEP", Total: decimal.NewFromInt(20300)}},
		Total: decimal.NewFromInt(20300),
	}

	out := render(t, rollup, "csv")
	assert.Equal(t, "Item,Total Cost\nTEP,20300.00\nTotal,20300.00\n", out)
}

func TestGenerate_LookupFormats(t *testing.T) {
	inventoryRepo, _ := testinghelpers.BuildShipmentTestData()
	rows, err := inventoryRepo.GetAllRows()
	require.NoError(t, err)
	result := &dto.LookupResult{Token: "WEG002121", Kind: dto.LookupByPO, Rows: rows[:2]}

	text := render(t, result, "text")
	assert.Contains(t, text, `PO lookup for "WEG002121": 2 rows`)
	assert.Contains(t, text, "ZIMU1112224")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(render(t, result, "json")), &decoded))
	assert.Equal(t, "PO", decoded["kind"])
	assert.Len(t, decoded["rows"], 2)

	lines := strings.Split(strings.TrimSpace(render(t, result, "csv")), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Item,Item Description,PO"))
	assert.True(t, strings.HasSuffix(lines[1], ",NaN,2024-01-09,Amelia Greene"))
}

func TestGenerate_BookingAndAnnotationText(t *testing.T) {
	pivot := &dto.BookingPivot{
		LotSize: decimal.NewFromInt(20000),
		Booked:  []dto.PPMQuantity{{PPM: "Amelia Greene", Lots: decimal.NewFromInt(3)}},
	}
	out := render(t, pivot, "text")
	assert.Contains(t, out, "lot size 20000")
	assert.Contains(t, out, "Amelia Greene")
	assert.Contains(t, out, "Not booked:\n  (none)")

	annotation := &dto.AnnotationResult{
		RunID:       "run-1",
		TotalRows:   5,
		MatchedRows: 3,
		Groups:      []dto.SCACGroup{{SCAC: "ZIMU", ContainerNumbers: []string{"A", "B"}, Positions: []int{0, 1, 2}}},
		Conflicts:   []dto.Conflict{{Position: 2, Previous: "ZIMU", Winner: "MSCU"}},
	}
	out = render(t, annotation, "text")
	assert.Contains(t, out, "Matched rows:         3")
	assert.Contains(t, out, "row 2: ZIMU overwritten by MSCU")

	assert.Equal(t, "SCAC,Container Numbers,Positions\nZIMU,A;B,0;1;2\n", render(t, annotation, "csv"))
}

func TestGenerate_Errors(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Generate(&dto.CostRollup{}, Config{Format: "html", Out: &buf}))
	assert.Error(t, Generate(struct{}{}, Config{Format: "text", Out: &buf}))
	assert.Error(t, Generate(struct{}{}, Config{Format: "csv", Out: &buf}))
}

func TestEvents(t *testing.T) {
	trail := []events.Event{
		events.NewEvent(events.SCACOverwrittenEvent, events.SCACOverwritten{Position: 2, Previous: "ZIMU", Winner: "MSCU"}),
	}

	var buf bytes.Buffer
	require.NoError(t, Events(trail, Config{Out: &buf}))
	assert.Contains(t, buf.String(), "Audit trail (1 events)")
	assert.Contains(t, buf.String(), `scac.overwritten`)
	assert.Contains(t, buf.String(), `"winner":"MSCU"`)
}
