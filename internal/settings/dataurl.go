package settings

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// EncodeDataURL turns raw image bytes into a data URL, sniffing the
// content type the way browsers do.
func EncodeDataURL(data []byte) string {
	mime := http.DetectContentType(data)
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}

// IsImageDataURL reports whether a stored value looks like an encoded image.
func IsImageDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
