package utils

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const tokenAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateQRToken 產生不透明的車輛 QR 識別碼："QR" + base36 時間戳 + 5 碼亂數
func GenerateQRToken() string {
	var suffix strings.Builder
	for i := 0; i < 5; i++ {
		suffix.WriteByte(tokenAlphabet[rand.Intn(len(tokenAlphabet))])
	}
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return "QR" + stamp + suffix.String()
}
