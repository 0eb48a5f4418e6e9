package longport

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// sign computes the request signature: HMAC-SHA256 over
// method|path|timestamp|body with the app secret, hex encoded.
func sign(secret, method, path, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(method))
	mac.Write([]byte{'|'})
	mac.Write([]byte(path))
	mac.Write([]byte{'|'})
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'|'})
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
