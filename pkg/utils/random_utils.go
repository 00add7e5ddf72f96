package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeAlphabet 礼品卡兑换码字符集（大写字母和数字）
const CodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCode 使用 crypto/rand 生成长度为 n 的大写随机码
func RandomCode(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("invalid code length %d", n)
	}

	max := big.NewInt(int64(len(CodeAlphabet)))
	buf := make([]byte, n)
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate random code: %w", err)
		}
		buf[i] = CodeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
