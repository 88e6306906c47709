package random

import (
	"gachapon_backend/internal/repository"
	"gachapon_backend/internal/service"
	"errors"
	"time"
)

var (
	ErrZeroRequestID   = errors.New("request id must be nonzero")
	ErrUnknownConsumer = errors.New("caller is not an allowed consumer")
	ErrInvalidRange    = errors.New("min must not exceed max")
	ErrPaused          = errors.New("platform is paused")
)

// Сервис псевдослучайности.
//
// Выход замешивается из энтропии окружения, глобального nonce, имени потребителя
// и requestID. Энтропия окружения видна до завершения операции, поэтому результат
// предсказуем для стороны, которая управляет порядком операций. Этого достаточно
// для игровой косметической случайности, но не для ставок с внешней ценностью.
// Ограничение сохранено сознательно: потребители опираются именно на эту модель
// честности, молча заменять ее более сильной гарантией нельзя
type serv struct {
	stateRepo     repository.RandomStateRepository
	platformState repository.PlatformStateRepository
	entropy       func() uint64
}

// NewRandomService Создать источник случайности с энтропией от часов окружения
func NewRandomService(
	stateRepo repository.RandomStateRepository,
	platformState repository.PlatformStateRepository,
) service.RandomService {
	return &serv{
		stateRepo:     stateRepo,
		platformState: platformState,
		entropy: func() uint64 {
			return uint64(time.Now().UnixNano())
		},
	}
}

// NewSeededRandomService Воспроизводимый источник для тестов и Монте-Карло прогонов.
// Вся вариативность идет от nonce, энтропия окружения зафиксирована
func NewSeededRandomService(
	stateRepo repository.RandomStateRepository,
	platformState repository.PlatformStateRepository,
	seed uint64,
) service.RandomService {
	return &serv{
		stateRepo:     stateRepo,
		platformState: platformState,
		entropy: func() uint64 {
			return seed
		},
	}
}
