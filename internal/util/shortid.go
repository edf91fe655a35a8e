package util

import (
	"crypto/rand"
	"fmt"
)

// Алфавит URL-safe, как в nanoid: 64 символа, поэтому каждый байт
// случайности отображается в символ без смещения распределения.
const shortIDAlphabet = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ShortIDLength — длина генерируемого идентификатора.
// 64^8 вариантов: вероятность коллизии на ожидаемых объемах пренебрежима,
// хранилище повторную проверку не делает.
const ShortIDLength = 8

// NewShortID генерирует криптостойкий короткий идентификатор.
func NewShortID() (string, error) {
	buf := make([]byte, ShortIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("shortid: rand read failed: %w", err)
	}
	out := make([]byte, ShortIDLength)
	for i, b := range buf {
		out[i] = shortIDAlphabet[int(b)&63]
	}
	return string(out), nil
}
