package service

import "errors"

// Виды ошибок сервиса. Хэндлеры различают их через errors.Is и
// отображают в стабильные коды ответов; стектрейсы наружу не уходят.
//
// Отсутствие пути между точками ошибкой не является: это штатный
// результат с пустым маршрутом и нулевой опасностью.
var (
	// ErrInvalidInput — некорректные координаты или параметры запроса.
	// Отклоняется до любой работы с графом.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstreamUnavailable — провайдер уличного графа или хранилище
	// инцидентов недоступны целиком.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrTimeout — запрос не уложился в бюджет времени. Отделён от
	// ErrUpstreamUnavailable, чтобы вызывающий мог повторить запрос
	// с большим бюджетом или меньшим радиусом поиска.
	ErrTimeout = errors.New("request timed out")
)
