package preprocess

import (
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// ReadFileContent reads a text file, decoding UTF-8 when valid and falling
// back to GBK, then Latin-1, for legacy exports.
func ReadFileContent(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return decodeText(data), nil
}

func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	if out, err := simplifiedchinese.GBK.NewDecoder().Bytes(data); err == nil && utf8.Valid(out) {
		return string(out)
	}
	// Latin-1 maps every byte, so this never fails.
	out, _ := charmap.ISO8859_1.NewDecoder().Bytes(data)
	return string(out)
}
