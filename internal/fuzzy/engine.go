package fuzzy

import "math"

// Engine вычисляет индекс опасности по четырём входам нечёткой модели.
// Функция вывода чистая и детерминированная: одинаковые входы всегда
// дают одинаковый результат, ошибок не возникает — входы защитно
// приводятся к рабочим диапазонам.
type Engine struct {
	model *Model
}

// NewEngine создает движок поверх готовой модели.
func NewEngine(model *Model) *Engine {
	return &Engine{model: model}
}

// Evaluate возвращает индекс опасности в [0,1], округлённый до двух знаков.
// Округление — часть контракта: закешированные значения сравниваются
// на точное равенство, пересчитывать с полной точностью нельзя.
//
// Граничный случай: при incidentCount <= 0 и avgSeverity <= 0 вывод
// не запускается и возвращается 0.0 — на пустом входе функции
// принадлежности не определены осмысленно.
func (e *Engine) Evaluate(incidentCount int, avgSeverity, distanceM, ageDays float64) float64 {
	if incidentCount <= 0 && avgSeverity <= 0 {
		return 0.0
	}

	m := e.model
	countDegrees := m.Count.Memberships(m.Count.Clamp(float64(incidentCount)))
	severityDegrees := m.Severity.Memberships(m.Severity.Clamp(avgSeverity))
	distanceDegrees := m.Distance.Memberships(m.Distance.Clamp(distanceM))
	ageDegrees := m.Age.Memberships(m.Age.Clamp(ageDays))

	// Агрегация: для каждого множества danger берём максимум срабатываний
	// правил с этим консеквентом, срабатывание = минимум антецедентов.
	activation := make([]float64, len(m.Danger.Sets))
	for _, r := range m.Rules {
		strength := math.Min(
			math.Min(countDegrees[r.Count], severityDegrees[r.Severity]),
			math.Min(distanceDegrees[r.Distance], ageDegrees[r.Age]),
		)
		if strength > activation[r.Consequent] {
			activation[r.Consequent] = strength
		}
	}

	return round2(e.centroid(activation))
}

// centroid — дефаззификация методом центра тяжести по дискретизированному
// универсуму danger.
func (e *Engine) centroid(activation []float64) float64 {
	m := e.model
	var num, den float64
	for x := m.Danger.Min; x <= m.Danger.Max+m.Step/2; x += m.Step {
		var mu float64
		for i, s := range m.Danger.Sets {
			degree := math.Min(activation[i], s.Membership(x))
			if degree > mu {
				mu = degree
			}
		}
		num += x * mu
		den += mu
	}
	if den == 0 {
		return 0
	}
	return num / den
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
