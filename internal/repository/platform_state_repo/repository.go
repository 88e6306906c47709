package platform_state_repo

import "sync"

// Реализация репозитория для глобального состояния платформы:
// пауза всех мутирующих операций и флаг выполняющейся игры
type StateRepo struct {
	mtx    sync.Mutex
	paused bool
	busy   bool
}

func NewPlatformStateRepository() *StateRepo {
	return &StateRepo{}
}

// Pause Включает глобальную паузу. Все мутирующие операции отклоняются
func (r *StateRepo) Pause() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.paused = true
}

// Unpause Снимает глобальную паузу
func (r *StateRepo) Unpause() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.paused = false
}

func (r *StateRepo) IsPaused() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.paused
}

// TryBeginOperation Пытается выставить флаг выполняющейся игры.
// Возвращает false, если игра уже идет: вложенный или конкурентный вход отклоняется,
// а не ждет - корректность розыгрыша зависит от строгого порядка мутаций
func (r *StateRepo) TryBeginOperation() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if r.busy {
		return false
	}
	r.busy = true
	return true
}

// EndOperation Снимает флаг выполняющейся игры
func (r *StateRepo) EndOperation() {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.busy = false
}
