package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrVenueInactive возвращается, когда площадка скрыта или не принимает заявки
	ErrVenueInactive = errors.New("create_booking: venue is not accepting bookings")

	// ErrVenueClosed возвращается, когда площадка закрыта в одну из указанных дат
	ErrVenueClosed = errors.New("create_booking: venue is closed on this date")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда интервал пересекается с занятым
	// временем или кулдауном
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrTimeElapsed возвращается, когда время начала слота на сегодня уже прошло
	ErrTimeElapsed = errors.New("create_booking: start time has already passed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
