package payment

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// RequestHash signs an initiation request:
// key|txnid|amount|productinfo|firstname|email|udf1..udf10|salt
func RequestHash(key string, r HashFields, salt string) string {
	parts := make([]string, 0, 17)
	parts = append(parts, key, r.TxnID, r.Amount, r.ProductInfo, r.FirstName, r.Email)
	parts = append(parts, r.UDF[:]...)
	parts = append(parts, salt)
	return sha512Hex(strings.Join(parts, "|"))
}

// CallbackHash recomputes the gateway's response hash. Field order is reversed
// relative to RequestHash and must match the gateway byte for byte:
// salt|status|udf10..udf1|email|firstname|productinfo|amount|txnid|key
func CallbackHash(salt, status string, r HashFields, key string) string {
	parts := make([]string, 0, 17)
	parts = append(parts, salt, status)
	for i := len(r.UDF) - 1; i >= 0; i-- {
		parts = append(parts, r.UDF[i])
	}
	parts = append(parts, r.Email, r.FirstName, r.ProductInfo, r.Amount, r.TxnID, key)
	return sha512Hex(strings.Join(parts, "|"))
}

// VerifyCallback reports whether p carries a hash matching its own fields.
// It never fails loudly; a missing hash is simply not valid.
func VerifyCallback(p CallbackPayload, salt string) bool {
	if p.Hash == "" {
		return false
	}
	expected := CallbackHash(salt, p.Status, p.HashFields(), p.Key)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(p.Hash)) == 1
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}
