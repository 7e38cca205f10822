package main

import (
	"spreadsheetPro/contracts"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellBinarySerializer_Marshal(t *testing.T) {
	serializer := NewCellBinarySerializer()
	serialized := serializer.Marshal(contracts.CellRecord{Address: "B12", Raw: "=A1+1"})

	assert.Equal(t, []byte{3, 0, 'B', '1', '2', '=', 'A', '1', '+', '1'}, serialized)
}

func TestCellBinarySerializer_Unmarshal(t *testing.T) {
	serializer := NewCellBinarySerializer()

	t.Run("valid_data", func(t *testing.T) {
		assertMarshalAndUnmarshal := func(expected contracts.CellRecord) {
			actual, err := serializer.Unmarshal(serializer.Marshal(expected))

			assert.NoError(t, err)
			assert.Equal(t, expected, actual)
		}

		assertMarshalAndUnmarshal(contracts.CellRecord{Address: "A1", Raw: "value1"})
		assertMarshalAndUnmarshal(contracts.CellRecord{Address: "AB1024", Raw: "=SUM(A1:A9) & \"ünïcode\""})
		assertMarshalAndUnmarshal(contracts.CellRecord{Address: "C3", Raw: ""})
	})

	t.Run("empty_data", func(t *testing.T) {
		record, err := serializer.Unmarshal([]byte{})

		assert.ErrorIs(t, err, contracts.SerializerError)
		assert.Equal(t, contracts.CellRecord{}, record)
	})

	t.Run("invalid_data", func(t *testing.T) {
		record, err := serializer.Unmarshal([]byte{' ', 'q', 'r'})

		assert.ErrorIs(t, err, contracts.SerializerError)
		assert.Equal(t, contracts.CellRecord{}, record)
	})
}
