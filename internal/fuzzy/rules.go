package fuzzy

// ruleTable — полная база правил: декартово произведение 3x3x3x3 = 81
// сочетание входных множеств, каждому сопоставлен ровно один консеквент.
// Сопоставление монотонно: усиление любого фактора опасности (больше
// инцидентов, выше тяжесть, ближе, свежее) при прочих равных никогда
// не понижает ранг консеквента. Полнота и монотонность проверяются тестом.
var ruleTable = []Rule{
	{Count: 0, Severity: 0, Distance: 0, Age: 0, Consequent: DangerModerate},
	{Count: 0, Severity: 0, Distance: 0, Age: 1, Consequent: DangerLow},
	{Count: 0, Severity: 0, Distance: 0, Age: 2, Consequent: DangerLow},
	{Count: 0, Severity: 0, Distance: 1, Age: 0, Consequent: DangerLow},
	{Count: 0, Severity: 0, Distance: 1, Age: 1, Consequent: DangerLow},
	{Count: 0, Severity: 0, Distance: 1, Age: 2, Consequent: DangerSafe},
	{Count: 0, Severity: 0, Distance: 2, Age: 0, Consequent: DangerLow},
	{Count: 0, Severity: 0, Distance: 2, Age: 1, Consequent: DangerSafe},
	{Count: 0, Severity: 0, Distance: 2, Age: 2, Consequent: DangerSafe},
	{Count: 0, Severity: 1, Distance: 0, Age: 0, Consequent: DangerModerate},
	{Count: 0, Severity: 1, Distance: 0, Age: 1, Consequent: DangerModerate},
	{Count: 0, Severity: 1, Distance: 0, Age: 2, Consequent: DangerLow},
	{Count: 0, Severity: 1, Distance: 1, Age: 0, Consequent: DangerModerate},
	{Count: 0, Severity: 1, Distance: 1, Age: 1, Consequent: DangerLow},
	{Count: 0, Severity: 1, Distance: 1, Age: 2, Consequent: DangerLow},
	{Count: 0, Severity: 1, Distance: 2, Age: 0, Consequent: DangerLow},
	{Count: 0, Severity: 1, Distance: 2, Age: 1, Consequent: DangerLow},
	{Count: 0, Severity: 1, Distance: 2, Age: 2, Consequent: DangerSafe},
	{Count: 0, Severity: 2, Distance: 0, Age: 0, Consequent: DangerHigh},
	{Count: 0, Severity: 2, Distance: 0, Age: 1, Consequent: DangerModerate},
	{Count: 0, Severity: 2, Distance: 0, Age: 2, Consequent: DangerModerate},
	{Count: 0, Severity: 2, Distance: 1, Age: 0, Consequent: DangerModerate},
	{Count: 0, Severity: 2, Distance: 1, Age: 1, Consequent: DangerModerate},
	{Count: 0, Severity: 2, Distance: 1, Age: 2, Consequent: DangerLow},
	{Count: 0, Severity: 2, Distance: 2, Age: 0, Consequent: DangerModerate},
	{Count: 0, Severity: 2, Distance: 2, Age: 1, Consequent: DangerLow},
	{Count: 0, Severity: 2, Distance: 2, Age: 2, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 0, Age: 0, Consequent: DangerModerate},
	{Count: 1, Severity: 0, Distance: 0, Age: 1, Consequent: DangerModerate},
	{Count: 1, Severity: 0, Distance: 0, Age: 2, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 1, Age: 0, Consequent: DangerModerate},
	{Count: 1, Severity: 0, Distance: 1, Age: 1, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 1, Age: 2, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 2, Age: 0, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 2, Age: 1, Consequent: DangerLow},
	{Count: 1, Severity: 0, Distance: 2, Age: 2, Consequent: DangerSafe},
	{Count: 1, Severity: 1, Distance: 0, Age: 0, Consequent: DangerHigh},
	{Count: 1, Severity: 1, Distance: 0, Age: 1, Consequent: DangerModerate},
	{Count: 1, Severity: 1, Distance: 0, Age: 2, Consequent: DangerModerate},
	{Count: 1, Severity: 1, Distance: 1, Age: 0, Consequent: DangerModerate},
	{Count: 1, Severity: 1, Distance: 1, Age: 1, Consequent: DangerModerate},
	{Count: 1, Severity: 1, Distance: 1, Age: 2, Consequent: DangerLow},
	{Count: 1, Severity: 1, Distance: 2, Age: 0, Consequent: DangerModerate},
	{Count: 1, Severity: 1, Distance: 2, Age: 1, Consequent: DangerLow},
	{Count: 1, Severity: 1, Distance: 2, Age: 2, Consequent: DangerLow},
	{Count: 1, Severity: 2, Distance: 0, Age: 0, Consequent: DangerHigh},
	{Count: 1, Severity: 2, Distance: 0, Age: 1, Consequent: DangerHigh},
	{Count: 1, Severity: 2, Distance: 0, Age: 2, Consequent: DangerModerate},
	{Count: 1, Severity: 2, Distance: 1, Age: 0, Consequent: DangerHigh},
	{Count: 1, Severity: 2, Distance: 1, Age: 1, Consequent: DangerModerate},
	{Count: 1, Severity: 2, Distance: 1, Age: 2, Consequent: DangerModerate},
	{Count: 1, Severity: 2, Distance: 2, Age: 0, Consequent: DangerModerate},
	{Count: 1, Severity: 2, Distance: 2, Age: 1, Consequent: DangerModerate},
	{Count: 1, Severity: 2, Distance: 2, Age: 2, Consequent: DangerLow},
	{Count: 2, Severity: 0, Distance: 0, Age: 0, Consequent: DangerHigh},
	{Count: 2, Severity: 0, Distance: 0, Age: 1, Consequent: DangerModerate},
	{Count: 2, Severity: 0, Distance: 0, Age: 2, Consequent: DangerModerate},
	{Count: 2, Severity: 0, Distance: 1, Age: 0, Consequent: DangerModerate},
	{Count: 2, Severity: 0, Distance: 1, Age: 1, Consequent: DangerModerate},
	{Count: 2, Severity: 0, Distance: 1, Age: 2, Consequent: DangerLow},
	{Count: 2, Severity: 0, Distance: 2, Age: 0, Consequent: DangerModerate},
	{Count: 2, Severity: 0, Distance: 2, Age: 1, Consequent: DangerLow},
	{Count: 2, Severity: 0, Distance: 2, Age: 2, Consequent: DangerLow},
	{Count: 2, Severity: 1, Distance: 0, Age: 0, Consequent: DangerHigh},
	{Count: 2, Severity: 1, Distance: 0, Age: 1, Consequent: DangerHigh},
	{Count: 2, Severity: 1, Distance: 0, Age: 2, Consequent: DangerModerate},
	{Count: 2, Severity: 1, Distance: 1, Age: 0, Consequent: DangerHigh},
	{Count: 2, Severity: 1, Distance: 1, Age: 1, Consequent: DangerModerate},
	{Count: 2, Severity: 1, Distance: 1, Age: 2, Consequent: DangerModerate},
	{Count: 2, Severity: 1, Distance: 2, Age: 0, Consequent: DangerModerate},
	{Count: 2, Severity: 1, Distance: 2, Age: 1, Consequent: DangerModerate},
	{Count: 2, Severity: 1, Distance: 2, Age: 2, Consequent: DangerLow},
	{Count: 2, Severity: 2, Distance: 0, Age: 0, Consequent: DangerVeryHigh},
	{Count: 2, Severity: 2, Distance: 0, Age: 1, Consequent: DangerHigh},
	{Count: 2, Severity: 2, Distance: 0, Age: 2, Consequent: DangerHigh},
	{Count: 2, Severity: 2, Distance: 1, Age: 0, Consequent: DangerHigh},
	{Count: 2, Severity: 2, Distance: 1, Age: 1, Consequent: DangerHigh},
	{Count: 2, Severity: 2, Distance: 1, Age: 2, Consequent: DangerModerate},
	{Count: 2, Severity: 2, Distance: 2, Age: 0, Consequent: DangerHigh},
	{Count: 2, Severity: 2, Distance: 2, Age: 1, Consequent: DangerModerate},
	{Count: 2, Severity: 2, Distance: 2, Age: 2, Consequent: DangerModerate},
}
