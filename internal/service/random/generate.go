package random

import (
	"crypto/sha256"
	"encoding/binary"
)

// Generate - выдает псевдослучайное число для разрешенного потребителя.
// Каждый вызов двигает глобальный nonce, поэтому кортеж входов одноразовый
// даже внутри одной атомарной операции
func (s *serv) Generate(requestID uint64, caller string) (uint64, error) {
	if requestID == 0 {
		return 0, ErrZeroRequestID
	}
	if !s.stateRepo.IsConsumer(caller) {
		return 0, ErrUnknownConsumer
	}

	nonce := s.stateRepo.NextNonce()

	return mix(s.entropy(), nonce, requestID, caller), nil
}

// GenerateInRange - число в [min, max] включительно.
// При min == max базовый вызов все равно делается и nonce двигается,
// но дополнительная энтропия не расходуется
func (s *serv) GenerateInRange(requestID uint64, caller string, min, max uint64) (uint64, error) {
	if min > max {
		return 0, ErrInvalidRange
	}

	base, err := s.Generate(requestID, caller)
	if err != nil {
		return 0, err
	}

	if min == max {
		return min, nil
	}

	span := max - min + 1
	return min + base%span, nil
}

// mix - одностороннее перемешивание входов через sha256
func mix(entropy, nonce, requestID uint64, caller string) uint64 {
	buf := make([]byte, 0, 24+len(caller))
	buf = binary.BigEndian.AppendUint64(buf, entropy)
	buf = binary.BigEndian.AppendUint64(buf, nonce)
	buf = binary.BigEndian.AppendUint64(buf, requestID)
	buf = append(buf, caller...)

	sum := sha256.Sum256(buf)
	return binary.BigEndian.Uint64(sum[:8])
}
