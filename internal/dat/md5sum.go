package dat

import (
	"crypto/md5"
	"encoding/hex"
	"os"

	"github.com/hanzinlp/hanseg/internal/herr"
)

// HashFiles computes the MD5 over the concatenated contents of paths, in
// order, skipping any path that is empty. An empty user-dict path is
// treated as "no file" rather than hashed as a zero-length read, per the
// open question in spec §9.
func HashFiles(paths ...string) (string, int64, error) {
	h := md5.New()
	var total int64
	for _, p := range paths {
		if p == "" {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return "", 0, herr.Wrap(herr.OpenFileFailed, "read file for hashing: "+p, err)
		}
		h.Write(b)
		total += int64(len(b))
	}
	return hex.EncodeToString(h.Sum(nil)), total, nil
}
