package placeservice

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не существует или скрыта
	ErrVenueNotFound = errors.New("venue not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("placeservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("placeservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что PlaceService недоступен: чтение расписаний продолжает
	// работать, операции, требующие данных площадки, завершаются с ошибкой
	ErrServiceDegraded = errors.New("placeservice unavailable: graceful degradation applied")
)
