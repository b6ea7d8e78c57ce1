package compute

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/cache"
	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
)

// computeFunc is one whitelisted read-only function over the cache.
type computeFunc func(op taxonomy.Operation, c *cache.Cache) Result

// functionTable is the closed dispatch table. Validation guarantees plans only
// carry these names, but Execute re-checks anyway.
var functionTable = map[string]computeFunc{
	taxonomy.FuncSumByCategory:    sumByCategory,
	taxonomy.FuncTopExpenses:      topExpenses,
	taxonomy.FuncMonthlyBreakdown: monthlyBreakdown,
	taxonomy.FuncCompareMonths:    compareMonths,
	taxonomy.FuncTrendAnalysis:    trendAnalysis,
	taxonomy.FuncCategoryShare:    categoryShare,
	taxonomy.FuncAverageExpense:   averageExpense,
	taxonomy.FuncAnalyze503020:    analyze503020,
	taxonomy.FuncGetAnomalies:     getAnomalies,
	taxonomy.FuncTotalBalance:     totalBalance,
	taxonomy.FuncIncomeBySource:   incomeBySource,
	taxonomy.FuncGetSummary:       getSummary,
}

// Execute runs every operation in order against the cache. A failure inside
// one operation is recorded as a failed result and does not abort siblings;
// result order matches operation order.
func Execute(ops []taxonomy.Operation, c *cache.Cache, log zerolog.Logger) []Result {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		results = append(results, executeOne(op, c, log))
	}
	return results
}

func executeOne(op taxonomy.Operation, c *cache.Cache, log zerolog.Logger) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("function", op.Function).Interface("panic", r).Msg("Compute operation panicked")
			result = Result{
				Operation: op.Function,
				Success:   false,
				Error:     fmt.Sprintf("panic: %v", r),
			}
		}
	}()

	fn, known := functionTable[op.Function]
	if !known {
		return Result{
			Operation: op.Function,
			Success:   false,
			Error:     fmt.Sprintf("unknown compute function %q", op.Function),
		}
	}
	return fn(op, c)
}
