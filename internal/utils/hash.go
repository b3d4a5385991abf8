package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
)

// keySeparator is written between the two streams so that moving bytes from
// the end of one stream to the start of the other changes the hash.
const keySeparator = " salt "

// MD5FromTwoStreams returns the hex md5 digest of a, followed by the
// separator, followed by b. The readers are consumed; callers that need the
// content again must buffer it first.
//
// Example usage:
//
//	key, err := utils.MD5FromTwoStreams(bytes.NewReader(menu), bytes.NewReader(people))
func MD5FromTwoStreams(a, b io.Reader) (string, error) {
	h := md5.New()

	if _, err := io.Copy(h, a); err != nil {
		return "", fmt.Errorf("error hashing first stream: %w", err)
	}
	if _, err := io.WriteString(h, keySeparator); err != nil {
		return "", fmt.Errorf("error hashing separator: %w", err)
	}
	if _, err := io.Copy(h, b); err != nil {
		return "", fmt.Errorf("error hashing second stream: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
