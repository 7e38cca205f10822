package contracts

import "errors"

// CellRecord is the persisted form of a cell: its A1 address and raw input
type CellRecord struct {
	Address string
	Raw     string
}

type CellSerializer interface {
	Marshal(record CellRecord) []byte
	Unmarshal(data []byte) (CellRecord, error)
}

var SerializerError = errors.New("invalid serialized data")
