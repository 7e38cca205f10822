package contracts

type ExpressionExecutor interface {
	// Evaluate never fails: any problem is reported as an error sentinel value
	Evaluate(sheet string, row int, col int, formula string, grid Grid) CellValue
	ExtractReferences(formula string) []string
	IsFormula(input string) bool
}
