package contracts

type CellDependencyTree interface {
	// SetDependsOn
	/**
	 * Example, for formula `Sheet1!R0C2 = A1 + SUM(B1:B3)`:
	 * SetDependsOn("Sheet1!R0C2", "=A1+SUM(B1:B3)", []string{"A1", "B1:B3"})
	 * stores the references canonically: "Sheet1!R0C0" and "Sheet1!R0C1:R2C1".
	 * Previous references of the cell are unlinked first.
	 */
	SetDependsOn(cellKey string, formula string, references []string)

	// ClearDependencies drops forward edges, reverse edges and the formula text of the cell
	ClearDependencies(cellKey string)

	// GetDirectDependents
	/**
	 * For formulas
	 *    - `C1 = A1 + B1` => C1 is a dependent of A1 and B1;
	 *    - `D1 = SUM(A1:A9)` => D1 is a dependent of every cell inside A1:A9.
	 * GetDirectDependents("Sheet1!R4C0") returns ["Sheet1!R0C3"], sorted.
	 */
	GetDirectDependents(cellKey string) []string

	// GetPrecedents returns the canonical references the formula of the cell reads
	GetPrecedents(cellKey string) []string

	// GetReferences returns reference tokens as they were written in the formula
	GetReferences(cellKey string) []string

	GetFormula(cellKey string) (formula string, ok bool)

	// FormulaKeys returns keys of all cells holding a formula, sorted
	FormulaKeys() []string
}
