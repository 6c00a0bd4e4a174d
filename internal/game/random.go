package game

import (
	"crypto/rand"
	"math/big"
)

// Picker returns a uniformly distributed index in [0, n).
// Implementations are only called with n > 0.
type Picker interface {
	Intn(n int) int
}

// CryptoPicker draws indexes from crypto/rand.
type CryptoPicker struct{}

// Intn implements Picker. It falls back to 0 if the entropy source fails.
func (CryptoPicker) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}
	return int(v.Int64())
}

// PickerFunc adapts a plain function to Picker.
type PickerFunc func(n int) int

// Intn implements Picker.
func (f PickerFunc) Intn(n int) int { return f(n) }

// pick selects one element of pool; out-of-range indexes are clamped.
func pick(p Picker, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	i := p.Intn(len(pool))
	if i < 0 || i >= len(pool) {
		i = 0
	}
	return pool[i]
}
