package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

// KeyChainService owns every cryptographic primitive of the recall client.
// It knows nothing about files, users or items.
//
// Scheme:
//
//	hash      = HashPassword(password)                  (signup, stored)
//	salt      = GenerateKeySalt()                       (signup, stored)
//	ok        = VerifyPassword(password, hash)          (login)
//	key       = DeriveSessionKey(password, salt)        (login, memory only)
//	nonce, ct = Seal(plaintext, key)                    (save)
//	plaintext = Open(nonce, ct, key)                    (load)
type KeyChainService interface {
	// GenerateKeySalt returns SaltSize random bytes used for session key
	// derivation. The salt is not secret.
	GenerateKeySalt() ([]byte, error)

	// HashPassword returns a self-describing Argon2id hash string that embeds
	// the algorithm, cost parameters and a fresh random salt.
	HashPassword(password string) (string, error)

	// VerifyPassword reports whether password matches encodedHash. A
	// malformed hash is an error, a mismatch is (false, nil).
	VerifyPassword(password, encodedHash string) (bool, error)

	// DeriveSessionKey deterministically derives a KeySize key from password
	// and salt with Argon2id. Any failure wraps ErrKeyDerivation.
	DeriveSessionKey(password string, salt []byte) ([]byte, error)

	// Seal encrypts and authenticates plaintext with XChaCha20-Poly1305
	// under a fresh random nonce.
	Seal(plaintext, key []byte) (nonce, ciphertext []byte, err error)

	// Open verifies and decrypts ciphertext. A wrong key or tampered input
	// returns an error wrapping ErrDecryption.
	Open(nonce, ciphertext, key []byte) ([]byte, error)
}
