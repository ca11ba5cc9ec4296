// Package sqlite stores snapshots of annotated inventory runs in a SQLite
// database so earlier runs can be compared with later ones.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/vsinha/scacmatch/pkg/domain/entities"
)

const dateLayout = "2006-01-02"

// insertBatchSize keeps a bulk insert below SQLite's bound variable limit
const insertBatchSize = 500

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id         TEXT PRIMARY KEY,
	created_at     TEXT NOT NULL,
	inventory_file TEXT NOT NULL,
	manifest_file  TEXT NOT NULL,
	total_rows     INTEGER NOT NULL,
	matched_rows   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS inventory_rows (
	run_id           TEXT NOT NULL REFERENCES runs(run_id),
	position         INTEGER NOT NULL,
	item             TEXT NOT NULL,
	item_description TEXT NOT NULL,
	po               TEXT NOT NULL,
	lot_number       TEXT NOT NULL,
	container_number TEXT NOT NULL,
	subinventory     TEXT NOT NULL,
	inv_org          TEXT NOT NULL,
	qty_available    TEXT NOT NULL,
	unit_cost        TEXT NOT NULL,
	total_cost       TEXT NOT NULL,
	carrier_assigned TEXT NOT NULL,
	scac             TEXT NOT NULL,
	expiration_date  TEXT NOT NULL,
	ppm              TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS carriers (
	run_id           TEXT NOT NULL REFERENCES runs(run_id),
	container_number TEXT NOT NULL,
	scac             TEXT NOT NULL,
	vessel           TEXT NOT NULL,
	PRIMARY KEY (run_id, container_number)
);
`

// Run describes one stored snapshot
type Run struct {
	RunID         string `db:"run_id"`
	CreatedAt     string `db:"created_at"`
	InventoryFile string `db:"inventory_file"`
	ManifestFile  string `db:"manifest_file"`
	TotalRows     int    `db:"total_rows"`
	MatchedRows   int    `db:"matched_rows"`
}

// Snapshot is everything written for one run
type Snapshot struct {
	Run       Run
	Inventory []*entities.InventoryRow
	Carriers  []*entities.CarrierRow
}

type inventoryRecord struct {
	RunID           string `db:"run_id"`
	Position        int    `db:"position"`
	Item            string `db:"item"`
	ItemDescription string `db:"item_description"`
	PO              string `db:"po"`
	LotNumber       string `db:"lot_number"`
	ContainerNumber string `db:"container_number"`
	Subinventory    string `db:"subinventory"`
	InvOrg          string `db:"inv_org"`
	QtyAvailable    string `db:"qty_available"`
	UnitCost        string `db:"unit_cost"`
	TotalCost       string `db:"total_cost"`
	CarrierAssigned string `db:"carrier_assigned"`
	SCAC            string `db:"scac"`
	ExpirationDate  string `db:"expiration_date"`
	PPM             string `db:"ppm"`
}

type carrierRecord struct {
	RunID           string `db:"run_id"`
	ContainerNumber string `db:"container_number"`
	SCAC            string `db:"scac"`
	Vessel          string `db:"vessel"`
}

// Store writes and reads snapshots
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at path and ensures the schema exists
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes a snapshot in a single transaction. CreatedAt defaults to now.
func (s *Store) Save(ctx context.Context, snapshot Snapshot) error {
	if snapshot.Run.RunID == "" {
		return fmt.Errorf("snapshot run id cannot be empty")
	}
	if snapshot.Run.CreatedAt == "" {
		snapshot.Run.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	const insertRun = `
		INSERT INTO runs (run_id, created_at, inventory_file, manifest_file, total_rows, matched_rows)
		VALUES (:run_id, :created_at, :inventory_file, :manifest_file, :total_rows, :matched_rows)`
	if _, err := tx.NamedExecContext(ctx, insertRun, snapshot.Run); err != nil {
		return fmt.Errorf("failed to insert run %s: %w", snapshot.Run.RunID, err)
	}

	inventory := make([]inventoryRecord, 0, len(snapshot.Inventory))
	for _, row := range snapshot.Inventory {
		inventory = append(inventory, toInventoryRecord(snapshot.Run.RunID, row))
	}
	const insertInventory = `
		INSERT INTO inventory_rows (
			run_id, position, item, item_description, po, lot_number, container_number,
			subinventory, inv_org, qty_available, unit_cost, total_cost, carrier_assigned,
			scac, expiration_date, ppm
		) VALUES (
			:run_id, :position, :item, :item_description, :po, :lot_number, :container_number,
			:subinventory, :inv_org, :qty_available, :unit_cost, :total_cost, :carrier_assigned,
			:scac, :expiration_date, :ppm
		)`
	for start := 0; start < len(inventory); start += insertBatchSize {
		end := min(start+insertBatchSize, len(inventory))
		if _, err := tx.NamedExecContext(ctx, insertInventory, inventory[start:end]); err != nil {
			return fmt.Errorf("failed to insert inventory rows: %w", err)
		}
	}

	carriers := make([]carrierRecord, 0, len(snapshot.Carriers))
	for _, c := range snapshot.Carriers {
		carriers = append(carriers, carrierRecord{
			RunID:           snapshot.Run.RunID,
			ContainerNumber: c.ContainerNumber,
			SCAC:            string(c.SCAC),
			Vessel:          c.Vessel,
		})
	}
	const insertCarrier = `
		INSERT INTO carriers (run_id, container_number, scac, vessel)
		VALUES (:run_id, :container_number, :scac, :vessel)`
	for start := 0; start < len(carriers); start += insertBatchSize {
		end := min(start+insertBatchSize, len(carriers))
		if _, err := tx.NamedExecContext(ctx, insertCarrier, carriers[start:end]); err != nil {
			return fmt.Errorf("failed to insert carriers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot %s: %w", snapshot.Run.RunID, err)
	}
	return nil
}

// Runs lists stored runs, newest first
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	const q = `SELECT run_id, created_at, inventory_file, manifest_file, total_rows, matched_rows
		FROM runs ORDER BY created_at DESC, run_id`
	if err := s.db.SelectContext(ctx, &runs, q); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// InventoryRows reads back the annotated inventory of a run in position order
func (s *Store) InventoryRows(ctx context.Context, runID string) ([]*entities.InventoryRow, error) {
	var records []inventoryRecord
	const q = `SELECT * FROM inventory_rows WHERE run_id = ? ORDER BY position`
	if err := s.db.SelectContext(ctx, &records, q, runID); err != nil {
		return nil, fmt.Errorf("failed to read inventory of run %s: %w", runID, err)
	}

	rows := make([]*entities.InventoryRow, 0, len(records))
	for _, rec := range records {
		row, err := rec.toEntity()
		if err != nil {
			return nil, fmt.Errorf("run %s position %d: %w", runID, rec.Position, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toInventoryRecord(runID string, row *entities.InventoryRow) inventoryRecord {
	rec := inventoryRecord{
		RunID:           runID,
		Position:        row.Position,
		Item:            string(row.Item),
		ItemDescription: row.ItemDescription,
		PO:              string(row.PO),
		LotNumber:       row.LotNumber,
		ContainerNumber: row.ContainerNumber,
		Subinventory:    row.Subinventory,
		InvOrg:          row.InvOrg,
		QtyAvailable:    row.QtyAvailable.String(),
		UnitCost:        row.UnitCost.String(),
		TotalCost:       row.TotalCost.String(),
		CarrierAssigned: row.CarrierAssigned,
		SCAC:            string(row.SCAC),
		PPM:             row.PPM,
	}
	if row.HasExpiration() {
		rec.ExpirationDate = row.ExpirationDate.Format(dateLayout)
	}
	return rec
}

func (rec inventoryRecord) toEntity() (*entities.InventoryRow, error) {
	row := &entities.InventoryRow{
		Position:        rec.Position,
		Item:            entities.ItemCode(rec.Item),
		ItemDescription: rec.ItemDescription,
		PO:              entities.POCode(rec.PO),
		LotNumber:       rec.LotNumber,
		ContainerNumber: rec.ContainerNumber,
		Subinventory:    rec.Subinventory,
		InvOrg:          rec.InvOrg,
		CarrierAssigned: rec.CarrierAssigned,
		SCAC:            entities.SCAC(rec.SCAC),
		PPM:             rec.PPM,
	}

	var err error
	if row.QtyAvailable, err = decimal.NewFromString(rec.QtyAvailable); err != nil {
		return nil, fmt.Errorf("qty_available: %w", err)
	}
	if row.UnitCost, err = decimal.NewFromString(rec.UnitCost); err != nil {
		return nil, fmt.Errorf("unit_cost: %w", err)
	}
	if row.TotalCost, err = decimal.NewFromString(rec.TotalCost); err != nil {
		return nil, fmt.Errorf("total_cost: %w", err)
	}
	if rec.ExpirationDate != "" {
		if row.ExpirationDate, err = time.Parse(dateLayout, rec.ExpirationDate); err != nil {
			return nil, fmt.Errorf("expiration_date: %w", err)
		}
	}
	return row, nil
}
