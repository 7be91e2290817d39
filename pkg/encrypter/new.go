package encrypter

// Encrypter provides symmetric encryption for protected health fields at
// rest (emergency-contact phone numbers).
type Encrypter interface {
	// Encrypt encrypts a plaintext string and returns a base64-encoded ciphertext.
	Encrypt(plaintext string) (string, error)
	// Decrypt decrypts a base64-encoded ciphertext string and returns the plaintext.
	Decrypt(ciphertext string) (string, error)
}

type implEncrypter struct {
	key string
}

var _ Encrypter = implEncrypter{}

// New creates an Encrypter with the given key. The key must be 16, 24, or 32
// bytes long.
func New(key string) Encrypter {
	return implEncrypter{key: key}
}
