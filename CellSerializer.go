package main

import (
	"encoding/binary"
	"fmt"
	"spreadsheetPro/contracts"
)

const addressLengthSize = 2

// CellBinarySerializer stores a record as a little endian uint16 address length,
// the address bytes and then the raw input up to the end of the value
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(record contracts.CellRecord) []byte {
	addressBytes := []byte(record.Address)

	serializedData := make([]byte, 0, addressLengthSize+len(addressBytes)+len(record.Raw))

	serializedData = binary.LittleEndian.AppendUint16(serializedData, uint16(len(addressBytes)))
	serializedData = append(serializedData, addressBytes...)
	serializedData = append(serializedData, record.Raw...)
	return serializedData
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (record contracts.CellRecord, err error) {
	if len(data) < addressLengthSize {
		return record, fmt.Errorf("%w: should be at least %d bytes (data: %q)", contracts.SerializerError, addressLengthSize, data)
	}

	addressLength := int(binary.LittleEndian.Uint16(data))
	if len(data) < addressLength+addressLengthSize {
		return record, fmt.Errorf("%w: address size exceeds data (addressSize: %d; data: %q)", contracts.SerializerError, addressLength, data)
	}

	record.Address = string(data[addressLengthSize : addressLength+addressLengthSize])
	record.Raw = string(data[addressLength+addressLengthSize:])
	return
}
