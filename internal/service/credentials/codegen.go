package credentials

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateAccessCode генерирует цифровой код указанной длины через
// crypto/rand. Код никак не выводится из идентификаторов записи или
// слота, каждый символ выбирается равновероятно.
func generateAccessCode(length int) (string, error) {
	const digits = "0123456789"

	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", fmt.Errorf("failed to read random digit: %w", err)
		}
		buf[i] = digits[n.Int64()]
	}

	return string(buf), nil
}
