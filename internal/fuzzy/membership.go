package fuzzy

import "math"

// BellSet — обобщённая колоколообразная функция принадлежности
// (generalized bell): mu(x) = 1 / (1 + |(x-c)/a|^(2b)).
// В отличие от треугольной, не имеет плоских нулевых участков,
// поэтому градиенты выхода остаются гладкими по всему универсуму.
type BellSet struct {
	Name   string
	Width  float64 // a
	Slope  float64 // b
	Center float64 // c
}

// Membership возвращает степень принадлежности x множеству в [0,1].
func (s BellSet) Membership(x float64) float64 {
	if s.Width == 0 {
		return 0
	}
	t := math.Abs((x - s.Center) / s.Width)
	return 1 / (1 + math.Pow(t, 2*s.Slope))
}

// Variable — лингвистическая переменная: рабочий диапазон и упорядоченный
// набор нечётких множеств. Порядок множеств фиксирован, индексы множеств
// используются базой правил.
type Variable struct {
	Name string
	Min  float64
	Max  float64
	Sets []BellSet
}

// Clamp приводит x к рабочему диапазону переменной.
func (v Variable) Clamp(x float64) float64 {
	return math.Min(math.Max(x, v.Min), v.Max)
}

// Memberships возвращает степени принадлежности x каждому множеству
// переменной, в порядке объявления множеств.
func (v Variable) Memberships(x float64) []float64 {
	degrees := make([]float64, len(v.Sets))
	for i, s := range v.Sets {
		degrees[i] = s.Membership(x)
	}
	return degrees
}
