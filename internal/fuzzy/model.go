package fuzzy

// Индексы входных множеств. Для количества и тяжести порядок low → high,
// для расстояния near → far, для давности recent → old.
const (
	SetLow      = 0
	SetModerate = 1
	SetHigh     = 2

	SetNear   = 0
	SetMedium = 1
	SetFar    = 2

	SetRecent = 0
	SetAged   = 1
	SetOld    = 2
)

// Индексы множеств выходной переменной danger, по возрастанию тяжести.
const (
	DangerSafe = iota
	DangerLow
	DangerModerate
	DangerHigh
	DangerVeryHigh
)

// Rule — одно правило вывода: сочетание входных множеств и
// единственный консеквент. Срабатывание = минимум степеней
// принадлежности четырёх антецедентов.
type Rule struct {
	Count      int
	Severity   int
	Distance   int
	Age        int
	Consequent int
}

// Model — неизменяемое описание нечёткой системы: переменные,
// их множества и база правил. Конструируется явно через NewModel
// и передаётся в Engine; никакого глобального состояния процесса.
// Это позволяет держать несколько настроек (например, по городам)
// одновременно и тестировать их независимо.
type Model struct {
	Count    Variable
	Severity Variable
	Distance Variable
	Age      Variable
	Danger   Variable
	Rules    []Rule

	// Шаг дискретизации универсума danger при дефаззификации.
	Step float64
}

// NewModel возвращает модель по умолчанию.
// Универсум количества инцидентов усечён на 50: большее число инцидентов
// уже не делает точку "ещё опаснее" для вывода.
func NewModel() *Model {
	return &Model{
		Count: Variable{
			Name: "incidents",
			Min:  0,
			Max:  50,
			Sets: []BellSet{
				{Name: "low", Width: 5, Slope: 2, Center: 5},
				{Name: "moderate", Width: 8, Slope: 2, Center: 20},
				{Name: "high", Width: 10, Slope: 2, Center: 40},
			},
		},
		Severity: Variable{
			Name: "severity",
			Min:  1,
			Max:  5,
			Sets: []BellSet{
				{Name: "low", Width: 0.8, Slope: 2, Center: 1.5},
				{Name: "moderate", Width: 0.8, Slope: 2, Center: 3},
				{Name: "high", Width: 0.8, Slope: 2, Center: 4.5},
			},
		},
		Distance: Variable{
			Name: "distance",
			Min:  0,
			Max:  100,
			Sets: []BellSet{
				{Name: "near", Width: 25, Slope: 2, Center: 0},
				{Name: "moderate", Width: 20, Slope: 2, Center: 50},
				{Name: "far", Width: 25, Slope: 2, Center: 100},
			},
		},
		Age: Variable{
			Name: "age",
			Min:  0,
			Max:  60,
			Sets: []BellSet{
				{Name: "recent", Width: 12, Slope: 2, Center: 0},
				{Name: "medium", Width: 12, Slope: 2, Center: 30},
				{Name: "old", Width: 15, Slope: 2, Center: 60},
			},
		},
		Danger: Variable{
			Name: "danger",
			Min:  0,
			Max:  1,
			Sets: []BellSet{
				{Name: "safe", Width: 0.12, Slope: 2, Center: 0.05},
				{Name: "low", Width: 0.1, Slope: 2, Center: 0.3},
				{Name: "moderate", Width: 0.1, Slope: 2, Center: 0.5},
				{Name: "high", Width: 0.1, Slope: 2, Center: 0.75},
				{Name: "very_high", Width: 0.1, Slope: 2, Center: 0.95},
			},
		},
		Rules: ruleTable,
		Step:  0.01,
	}
}
