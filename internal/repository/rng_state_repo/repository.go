package rng_state_repo

import (
	"sort"
	"sync"
)

// Реализация репозитория для состояния источника случайности.
// Nonce и список потребителей живут в памяти процесса под мьютексом
type StateRepo struct {
	mtx       sync.Mutex
	nonce     uint64
	consumers map[string]struct{}
}

// NewRandomStateRepository Конструктор репозитория состояния случайности.
// Начальные потребители регистрируются сразу, дальше списком управляет админ
func NewRandomStateRepository(initialConsumers ...string) *StateRepo {
	consumers := make(map[string]struct{}, len(initialConsumers))
	for _, name := range initialConsumers {
		consumers[name] = struct{}{}
	}
	return &StateRepo{
		consumers: consumers,
	}
}

// NextNonce Продвигает глобальный счетчик и возвращает новое значение.
// Каждый вызов генерации двигает nonce, повторное использование невозможно
func (r *StateRepo) NextNonce() uint64 {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.nonce++
	return r.nonce
}

// IsConsumer Проверяет, разрешен ли потребитель
func (r *StateRepo) IsConsumer(name string) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	_, ok := r.consumers[name]
	return ok
}

// AddConsumer Добавляет потребителя в список разрешенных
func (r *StateRepo) AddConsumer(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.consumers[name] = struct{}{}
}

// RemoveConsumer Убирает потребителя из списка разрешенных
func (r *StateRepo) RemoveConsumer(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.consumers, name)
}

// Consumers Текущий список разрешенных потребителей
func (r *StateRepo) Consumers() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.consumers))
	for name := range r.consumers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
