package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vsinha/scacmatch/pkg/application/dto"
	"github.com/vsinha/scacmatch/pkg/domain/entities"
	"github.com/vsinha/scacmatch/pkg/domain/repositories"
	"github.com/vsinha/scacmatch/pkg/infrastructure/events"
)

// ErrConflictingMatch is returned under ConflictError when two carrier codes
// claim the same inventory row
var ErrConflictingMatch = errors.New("inventory row matched by more than one carrier code")

// MatchMode selects how a manifest container number is compared with the
// inventory Container# field
type MatchMode int

const (
	// MatchSubstring matches when the manifest number occurs anywhere in the
	// inventory field, which may list several containers
	MatchSubstring MatchMode = iota
	// MatchExact matches only identical normalized numbers
	MatchExact
)

// String method for MatchMode enum
func (m MatchMode) String() string {
	switch m {
	case MatchSubstring:
		return "substring"
	case MatchExact:
		return "exact"
	default:
		return "unknown"
	}
}

// ParseMatchMode parses a match mode name
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "substring":
		return MatchSubstring, nil
	case "exact":
		return MatchExact, nil
	default:
		return MatchSubstring, fmt.Errorf("invalid match mode: %s (expected: substring or exact)", s)
	}
}

// ConflictPolicy decides what happens when a row is matched by two carrier codes
type ConflictPolicy int

const (
	// ConflictLastWrite lets the carrier code processed later win
	ConflictLastWrite ConflictPolicy = iota
	// ConflictError aborts the annotation before any row is changed
	ConflictError
)

// String method for ConflictPolicy enum
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictLastWrite:
		return "last-write"
	case ConflictError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseConflictPolicy parses a conflict policy name
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-write":
		return ConflictLastWrite, nil
	case "error":
		return ConflictError, nil
	default:
		return ConflictLastWrite, fmt.Errorf("invalid conflict policy: %s (expected: last-write or error)", s)
	}
}

// MatcherConfig holds configuration for the annotation step
type MatcherConfig struct {
	Mode      MatchMode
	Conflicts ConflictPolicy
}

// MatcherService annotates inventory rows with the SCAC of their container
type MatcherService struct {
	config   MatcherConfig
	events   events.EventStore
	logger   *zap.Logger
	newRunID func() string
}

// NewMatcherService creates a new matcher. store may be nil when no audit
// trail is wanted.
func NewMatcherService(config MatcherConfig, store events.EventStore, logger *zap.Logger) *MatcherService {
	return &MatcherService{
		config:   config,
		events:   store,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Annotate matches every manifest row against the inventory and writes the
// resulting SCAC codes into the inventory repository.
//
// Manifest rows are processed in load order and SCAC groups are resolved in the
// order each code was first seen, so under ConflictLastWrite the code seen
// later wins a contested row.
func (s *MatcherService) Annotate(
	ctx context.Context,
	inventoryRepo repositories.InventoryRepository,
	carrierRepo repositories.CarrierRepository,
) (*dto.AnnotationResult, error) {
	carriers, err := carrierRepo.GetAllCarriers()
	if err != nil {
		return nil, fmt.Errorf("failed to read carriers: %w", err)
	}

	result := &dto.AnnotationResult{
		RunID:     s.newRunID(),
		TotalRows: inventoryRepo.Count(),
	}

	// Step 1: collect matched positions per SCAC
	groupIndex := make(map[entities.SCAC]int)
	for _, carrier := range carriers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !carrier.SCAC.IsSet() {
			s.logger.Debug("manifest row without SCAC", zap.String("container", carrier.ContainerNumber))
			if err := s.unmatched(result, carrier); err != nil {
				return nil, err
			}
			continue
		}

		positions, err := inventoryRepo.ContainerPositions(s.containerMatcher(carrier.ContainerNumber))
		if err != nil {
			return nil, fmt.Errorf("failed to match container %s: %w", carrier.ContainerNumber, err)
		}
		if len(positions) == 0 {
			if err := s.unmatched(result, carrier); err != nil {
				return nil, err
			}
			continue
		}

		idx, ok := groupIndex[carrier.SCAC]
		if !ok {
			idx = len(result.Groups)
			groupIndex[carrier.SCAC] = idx
			result.Groups = append(result.Groups, dto.SCACGroup{SCAC: carrier.SCAC})
		}
		group := &result.Groups[idx]
		group.ContainerNumbers = append(group.ContainerNumbers, carrier.ContainerNumber)
		group.Positions = append(group.Positions, positions...)

		if err := s.publish(result.RunID, events.ContainerMatchedEvent, events.ContainerMatched{
			Carrier:   *carrier,
			Positions: positions,
		}); err != nil {
			return nil, err
		}
	}

	// Step 2: resolve ownership before touching any row
	owner := make(map[int]entities.SCAC)
	for i := range result.Groups {
		group := &result.Groups[i]
		group.Positions = sortedUnique(group.Positions)

		for _, pos := range group.Positions {
			previous, claimed := owner[pos]
			if claimed && previous != group.SCAC {
				if s.config.Conflicts == ConflictError {
					return nil, fmt.Errorf("%w: row %d claimed by %s and %s",
						ErrConflictingMatch, pos, previous, group.SCAC)
				}
				conflict := dto.Conflict{Position: pos, Previous: previous, Winner: group.SCAC}
				result.Conflicts = append(result.Conflicts, conflict)
				if err := s.publish(result.RunID, events.SCACOverwrittenEvent, events.SCACOverwritten(conflict)); err != nil {
					return nil, err
				}
			}
			owner[pos] = group.SCAC
		}
	}

	// Step 3: apply
	for pos, scac := range owner {
		if err := inventoryRepo.SetSCAC(pos, scac); err != nil {
			return nil, fmt.Errorf("failed to annotate row %d: %w", pos, err)
		}
	}

	result.MatchedRows = len(owner)
	result.UnmatchedRows = result.TotalRows - result.MatchedRows

	if err := s.publish(result.RunID, events.AnnotationAppliedEvent, events.AnnotationApplied{
		MatchedRows:   result.MatchedRows,
		UnmatchedRows: result.UnmatchedRows,
		Conflicts:     len(result.Conflicts),
	}); err != nil {
		return nil, err
	}

	s.logger.Info("annotation applied",
		zap.String("run_id", result.RunID),
		zap.Stringer("mode", s.config.Mode),
		zap.Int("rows", result.TotalRows),
		zap.Int("matched", result.MatchedRows),
		zap.Int("scac_groups", len(result.Groups)),
		zap.Int("unmatched_containers", len(result.UnmatchedCarriers)),
		zap.Int("conflicts", len(result.Conflicts)),
	)

	return result, nil
}

// containerMatcher builds the predicate applied to each inventory Container#
// field. An empty manifest number never matches.
func (s *MatcherService) containerMatcher(containerNumber string) func(string) bool {
	if containerNumber == "" {
		return func(string) bool { return false }
	}
	if s.config.Mode == MatchExact {
		return func(field string) bool { return field == containerNumber }
	}
	return func(field string) bool { return strings.Contains(field, containerNumber) }
}

func (s *MatcherService) unmatched(result *dto.AnnotationResult, carrier *entities.CarrierRow) error {
	result.UnmatchedCarriers = append(result.UnmatchedCarriers, *carrier)
	return s.publish(result.RunID, events.ContainerUnmatchedEvent, events.ContainerUnmatched{Carrier: *carrier})
}

func (s *MatcherService) publish(runID, eventType string, data interface{}) error {
	if s.events == nil {
		return nil
	}
	if err := s.events.AppendEvent(runID, events.NewEvent(eventType, data)); err != nil {
		return fmt.Errorf("failed to record %s: %w", eventType, err)
	}
	return nil
}

func sortedUnique(positions []int) []int {
	sort.Ints(positions)
	unique := positions[:0]
	for _, pos := range positions {
		if len(unique) == 0 || pos != unique[len(unique)-1] {
			unique = append(unique, pos)
		}
	}
	return unique
}
