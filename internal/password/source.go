package password

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

type seededSource struct {
	cipher *chacha20.Cipher
}

// NewSeededSource returns a deterministic random stream derived from seed.
// Equal seeds yield equal streams. It is meant for tests and reproducible
// output, never for real passwords.
func NewSeededSource(seed uint64) io.Reader {
	key := make([]byte, chacha20.KeySize)
	binary.LittleEndian.PutUint64(key, seed)
	nonce := make([]byte, chacha20.NonceSize)

	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		// Key and nonce sizes are fixed above.
		panic(err)
	}
	return &seededSource{cipher: c}
}

func (s *seededSource) Read(p []byte) (int, error) {
	clear(p)
	s.cipher.XORKeyStream(p, p)
	return len(p), nil
}
