package fetch

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"os"

	"github.com/vkotov/rulesmith/internal/log"
)

// checksumReader calculates the MD5 of everything read through it.
type checksumReader struct {
	reader io.Reader
	sum    hash.Hash
}

func newChecksumReader(r io.Reader) *checksumReader {
	return &checksumReader{reader: r, sum: md5.New()}
}

func (p *checksumReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 {
		if _, werr := p.sum.Write(buf[:n]); werr != nil {
			return n, werr
		}
	}
	return n, err
}

func (p *checksumReader) Checksum() string {
	return hex.EncodeToString(p.sum.Sum(nil))
}

// isFileChanged compares the freshly computed checksum against the sidecar
// checksum file. A missing target or unreadable sidecar counts as changed.
func isFileChanged(checksum string, filePath string) bool {
	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		return true
	}

	stored, err := os.ReadFile(filePath + ".md5")
	if err != nil {
		log.Debugf("Failed to read checksum file '%s.md5', assuming changed: %v", filePath, err)
		return true
	}
	return string(stored) != checksum
}

func writeChecksum(checksum string, filePath string) error {
	return os.WriteFile(filePath+".md5", []byte(checksum), 0644)
}
