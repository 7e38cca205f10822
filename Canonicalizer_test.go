package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizer_Canonicalize(t *testing.T) {
	canonicalizer := NewCanonicalizer()

	_canonicalize := func(currentSheet string, token string) string {
		key, ok := canonicalizer.Canonicalize(currentSheet, token)
		assert.True(t, ok, token)
		return key
	}

	t.Run("invalid", func(t *testing.T) {
		for _, token := range []string{"", "A0", "1A", "A1:", "!A1", "S!T!A1", "Sheet1!A1:Sheet2!B2", "A1:B2:C3"} {
			_, ok := canonicalizer.Canonicalize("Sheet1", token)
			assert.False(t, ok, token)
		}
	})

	t.Run("cells", func(t *testing.T) {
		assert.Equal(t, "Sheet1!R0C0", _canonicalize("Sheet1", "A1"))
		assert.Equal(t, "Sheet1!R0C0", _canonicalize("Sheet1", "a1"))
		assert.Equal(t, "Sheet1!R0C0", _canonicalize("Other", "Sheet1!A1"))
		assert.Equal(t, "Sheet1!R9C27", _canonicalize("Sheet1", "AB10"))
	})

	t.Run("ranges", func(t *testing.T) {
		assert.Equal(t, "Sheet1!R0C0:R2C1", _canonicalize("Sheet1", "A1:B3"))
		assert.Equal(t, "Sheet1!R0C0:R2C1", _canonicalize("Sheet1", "B3:A1"))
		assert.Equal(t, "Sheet1!R0C0:R2C1", _canonicalize("Sheet1", "A3:B1"))
		assert.Equal(t, "Data!R0C0:R2C1", _canonicalize("Sheet1", "Data!A1:Data!B3"))
		assert.Equal(t, "Data!R0C0:R2C1", _canonicalize("Sheet1", "Data!A1:B3"))
	})

	t.Run("single_cell_range_is_a_cell", func(t *testing.T) {
		assert.Equal(t, "Sheet1!R1C1", _canonicalize("Sheet1", "B2:B2"))
	})
}

func TestCanonicalizer_CanonicalizeAll(t *testing.T) {
	canonicalizer := NewCanonicalizer()

	keys := canonicalizer.CanonicalizeAll("Sheet1", []string{"B1", "A0", "b1", "Sheet1!B1", "A1:A2", "A2:A1"})

	assert.Equal(t, []string{"Sheet1!R0C1", "Sheet1!R0C0:R1C0"}, keys)
}
