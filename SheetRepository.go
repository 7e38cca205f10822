package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"spreadsheetPro/contracts"
	"sync"

	"go.alis.build/alog"
	"go.etcd.io/bbolt"
)

// SheetRepository persists raw cell input into bbolt, one bucket per sheet keyed by
// cell key, and serves computed values from the in-memory workbook
type SheetRepository struct {
	// writeMutex keeps the stored input and the workbook in the same order of edits
	writeMutex        sync.Mutex
	db                *bbolt.DB
	workbook          *Workbook
	serializer        contracts.CellSerializer
	webhookDispatcher contracts.WebhookDispatcher
}

var sheetIdRegex = regexp.MustCompile(`^[\p{L}\p{N}_]+$`)

func NewSheetRepository(
	db *bbolt.DB, workbook *Workbook,
	serializer contracts.CellSerializer, webhookDispatcher contracts.WebhookDispatcher,
) *SheetRepository {
	return &SheetRepository{
		db:                db,
		workbook:          workbook,
		serializer:        serializer,
		webhookDispatcher: webhookDispatcher,
	}
}

// Load replays every persisted cell into the workbook and recomputes all formulas
func (s *SheetRepository) Load(ctx context.Context) error {
	inputs := map[contracts.CellAddress]string{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(sheetId []byte, bucket *bbolt.Bucket) error {
			return bucket.ForEach(func(key []byte, value []byte) error {
				address, ok := ParseCellKey(string(key))
				if !ok || address.Sheet != string(sheetId) {
					alog.Warnf(ctx, "skip stored cell with malformed key %q in sheet %q", key, sheetId)
					return nil
				}

				record, err := s.serializer.Unmarshal(value)
				if err != nil {
					return fmt.Errorf("cell %s: %w", key, err)
				}

				inputs[address] = record.Raw
				return nil
			})
		})
	})
	if err != nil {
		return err
	}

	recalculation := s.workbook.Load(ctx, inputs)
	alog.Infof(ctx, "loaded %d cells, recalculated %d formulas, %d in cycles",
		len(inputs), len(recalculation.Changed), len(recalculation.Cycles))

	return nil
}

func (s *SheetRepository) SetCell(ctx context.Context, sheetId string, cellId string, value string) (cell *contracts.Cell, updated []*contracts.Cell, err error) {
	if value == "" {
		cell, updated, err = s.ClearCell(ctx, sheetId, cellId)
		// clearing a cell that was never set is not an error for a write
		if errors.Is(err, contracts.CellNotFoundError) || errors.Is(err, contracts.SheetNotFoundError) {
			address, _ := s.parseAddress(sheetId, cellId)
			return s.makeCell(address), []*contracts.Cell{}, nil
		}
		return cell, updated, err
	}

	address, err := s.parseAddress(sheetId, cellId)
	if err != nil {
		return &contracts.Cell{Value: value, Result: err.Error()}, nil, err
	}

	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	key := []byte(FormatCellKey(address))
	serializedData := s.serializer.Marshal(contracts.CellRecord{
		Address: FormatCellToken(address.Row, address.Col),
		Raw:     value,
	})

	err = s.db.Batch(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(address.Sheet))
		if err != nil {
			return err
		}
		return bucket.Put(key, serializedData)
	})
	if err != nil {
		return nil, nil, err
	}

	cell, updated = s.applyRecalculation(address, s.workbook.SetCell(ctx, address, value))
	return cell, updated, nil
}

func (s *SheetRepository) ClearCell(ctx context.Context, sheetId string, cellId string) (cell *contracts.Cell, updated []*contracts.Cell, err error) {
	address, err := s.parseAddress(sheetId, cellId)
	if err != nil {
		return &contracts.Cell{Result: err.Error()}, nil, err
	}

	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	key := []byte(FormatCellKey(address))
	err = s.db.Batch(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(address.Sheet))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		if bucket.Get(key) == nil {
			return fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
		}
		return bucket.Delete(key)
	})
	if err != nil {
		return nil, nil, err
	}

	cell, updated = s.applyRecalculation(address, s.workbook.ClearCell(ctx, address))
	return cell, updated, nil
}

func (s *SheetRepository) GetCell(ctx context.Context, sheetId string, cellId string) (*contracts.Cell, error) {
	address, err := s.parseAddress(sheetId, cellId)
	if err != nil {
		return nil, err
	}

	if _, ok := s.workbook.Input(address); !ok {
		if !s.workbook.HasSheet(address.Sheet) {
			return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		return nil, fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
	}

	return s.makeCell(address), nil
}

func (s *SheetRepository) GetCellList(ctx context.Context, sheetId string) (*contracts.CellList, error) {
	if !sheetIdRegex.MatchString(sheetId) {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.InvalidSheetIdError)
	}

	addresses := s.workbook.Addresses(sheetId)
	if len(addresses) == 0 {
		return nil, fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
	}

	cellList := make(contracts.CellList, len(addresses))
	for _, address := range addresses {
		cell := s.makeCell(address)
		cellList[cell.Address] = cell
	}

	return &cellList, nil
}

func (s *SheetRepository) GetDependents(ctx context.Context, sheetId string, cellId string) (*contracts.Dependents, error) {
	address, err := s.parseAddress(sheetId, cellId)
	if err != nil {
		return nil, err
	}

	direct, all := s.workbook.Dependents(address)
	return &contracts.Dependents{
		Key:    FormatCellKey(address),
		Direct: formatQualifiedTokens(direct),
		All:    formatQualifiedTokens(all),
	}, nil
}

// Recalculate recomputes every formula and notifies webhooks about cells whose value
// moved, which only happens for NOW, TODAY and cells reading them
func (s *SheetRepository) Recalculate(ctx context.Context) []*contracts.Cell {
	s.writeMutex.Lock()
	defer s.writeMutex.Unlock()

	previous := map[contracts.CellAddress]contracts.CellValue{}
	for _, sheet := range s.workbook.SheetNames() {
		for _, address := range s.workbook.Addresses(sheet) {
			previous[address] = s.workbook.Get(address)
		}
	}

	recalculation := s.workbook.RecalculateAll(ctx)

	updated := make([]*contracts.Cell, 0)
	for _, address := range recalculation.Changed {
		if s.workbook.Get(address) != previous[address] {
			updated = append(updated, s.makeCell(address))
		}
	}

	if len(updated) > 0 {
		alog.Debugf(ctx, "recalculation updated %d cells", len(updated))
		if s.webhookDispatcher != nil {
			s.webhookDispatcher.Notify(updated)
		}
	}

	return updated
}

func (s *SheetRepository) CellKey(sheetId string, cellId string) (string, error) {
	address, err := s.parseAddress(sheetId, cellId)
	if err != nil {
		return "", err
	}
	return FormatCellKey(address), nil
}

// parseAddress accepts a single A1 style cell id, ranges and sheet prefixes are rejected
func (s *SheetRepository) parseAddress(sheetId string, cellId string) (contracts.CellAddress, error) {
	if !sheetIdRegex.MatchString(sheetId) {
		return contracts.CellAddress{}, fmt.Errorf("%s: %w", sheetId, contracts.InvalidSheetIdError)
	}

	row, col, ok := ParseCellToken(cellId)
	if !ok {
		return contracts.CellAddress{}, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.InvalidCellIdError)
	}

	return contracts.CellAddress{Sheet: sheetId, Row: row, Col: col}, nil
}

// applyRecalculation builds API cells for the edited cell and every cell recomputed
// after it, and hands all of them to subscribed webhooks
func (s *SheetRepository) applyRecalculation(address contracts.CellAddress, recalculation Recalculation) (*contracts.Cell, []*contracts.Cell) {
	cell := s.makeCell(address)
	updated := make([]*contracts.Cell, 0, len(recalculation.Changed))
	notify := []*contracts.Cell{cell}

	for _, changed := range recalculation.Changed {
		if changed == address {
			continue
		}
		changedCell := s.makeCell(changed)
		updated = append(updated, changedCell)
		notify = append(notify, changedCell)
	}

	if s.webhookDispatcher != nil {
		s.webhookDispatcher.Notify(notify)
	}

	return cell, updated
}

func (s *SheetRepository) makeCell(address contracts.CellAddress) *contracts.Cell {
	value := s.workbook.Get(address)
	raw, _ := s.workbook.Input(address)

	return &contracts.Cell{
		Key:     FormatCellKey(address),
		Address: FormatCellToken(address.Row, address.Col),
		Value:   raw,
		Result:  value.String(),
		Type:    value.Kind.String(),
	}
}

func formatQualifiedTokens(addresses []contracts.CellAddress) []string {
	tokens := make([]string, 0, len(addresses))
	for _, address := range addresses {
		tokens = append(tokens, address.Sheet+SheetSeparator+FormatCellToken(address.Row, address.Col))
	}
	return tokens
}
