package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRuleTable_Complete проверяет, что база правил покрывает все 81
// сочетание входных множеств ровно по одному разу.
func TestRuleTable_Complete(t *testing.T) {
	require.Len(t, ruleTable, 81)

	seen := make(map[string]bool, 81)
	for _, r := range ruleTable {
		assert.GreaterOrEqual(t, r.Count, 0)
		assert.LessOrEqual(t, r.Count, 2)
		assert.GreaterOrEqual(t, r.Severity, 0)
		assert.LessOrEqual(t, r.Severity, 2)
		assert.GreaterOrEqual(t, r.Distance, 0)
		assert.LessOrEqual(t, r.Distance, 2)
		assert.GreaterOrEqual(t, r.Age, 0)
		assert.LessOrEqual(t, r.Age, 2)
		assert.GreaterOrEqual(t, r.Consequent, DangerSafe)
		assert.LessOrEqual(t, r.Consequent, DangerVeryHigh)

		key := fmt.Sprintf("%d:%d:%d:%d", r.Count, r.Severity, r.Distance, r.Age)
		assert.False(t, seen[key], "duplicate rule %s", key)
		seen[key] = true
	}
	assert.Len(t, seen, 81)
}

// TestRuleTable_Monotonic проверяет, что усиление любого фактора опасности
// при прочих равных не понижает ранг консеквента. Для количества и тяжести
// опаснее больший индекс множества, для расстояния и давности — меньший.
func TestRuleTable_Monotonic(t *testing.T) {
	byKey := make(map[[4]int]int, 81)
	for _, r := range ruleTable {
		byKey[[4]int{r.Count, r.Severity, r.Distance, r.Age}] = r.Consequent
	}

	for _, r := range ruleTable {
		if r.Count < 2 {
			assert.GreaterOrEqual(t, byKey[[4]int{r.Count + 1, r.Severity, r.Distance, r.Age}], r.Consequent)
		}
		if r.Severity < 2 {
			assert.GreaterOrEqual(t, byKey[[4]int{r.Count, r.Severity + 1, r.Distance, r.Age}], r.Consequent)
		}
		if r.Distance > 0 {
			assert.GreaterOrEqual(t, byKey[[4]int{r.Count, r.Severity, r.Distance - 1, r.Age}], r.Consequent)
		}
		if r.Age > 0 {
			assert.GreaterOrEqual(t, byKey[[4]int{r.Count, r.Severity, r.Distance, r.Age - 1}], r.Consequent)
		}
	}
}

// TestRuleTable_Extremes фиксирует якорные правила на краях таблицы.
func TestRuleTable_Extremes(t *testing.T) {
	byKey := make(map[[4]int]int, 81)
	for _, r := range ruleTable {
		byKey[[4]int{r.Count, r.Severity, r.Distance, r.Age}] = r.Consequent
	}

	// Худший случай: много тяжёлых свежих инцидентов вплотную.
	assert.Equal(t, DangerVeryHigh, byKey[[4]int{SetHigh, SetHigh, SetNear, SetRecent}])
	// Лучший случай: мало лёгких старых инцидентов далеко.
	assert.Equal(t, DangerSafe, byKey[[4]int{SetLow, SetLow, SetFar, SetOld}])
}
