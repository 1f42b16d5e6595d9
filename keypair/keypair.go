// Package keypair implements the KeyPair lifecycle: a secp256k1 private
// key that can be locked behind a passphrase-derived AES-GCM key and
// unlocked again, adapted from the node's own encrypted-keystore
// envelope (AES-GCM over a 32-byte master key).
package keypair

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/schnorr"
	"golang.org/x/crypto/scrypt"

	"github.com/icryptix/core/coreerrors"
	"github.com/icryptix/core/jsonx"
)

const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// KeyPair holds either a cleartext private key (Unlocked) or an
// encrypted blob plus the lock flag (Locked). Instances are not
// thread-safe; callers serialize access.
type KeyPair struct {
	publicKey  *secp256k1.PublicKey
	privateKey *secp256k1.PrivateKey // nil when locked
	locked     bool

	// encrypted is non-nil once the pair has been locked at least once,
	// so relock can re-apply the last key without requiring it again.
	encrypted *encryptedBlob
	lastKey   []byte
}

// encryptedBlob is the on-disk/on-wire envelope: salt for the KDF, the
// GCM nonce, and the ciphertext.
type encryptedBlob struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// New creates an unlocked KeyPair from a freshly generated secp256k1 key.
func New() (*KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{publicKey: priv.PubKey(), privateKey: priv}, nil
}

// FromPrivateKey wraps an existing private key, unlocked.
func FromPrivateKey(priv *secp256k1.PrivateKey) *KeyPair {
	return &KeyPair{publicKey: priv.PubKey(), privateKey: priv}
}

// PublicKey is always readable, locked or not.
func (kp *KeyPair) PublicKey() *secp256k1.PublicKey {
	return kp.publicKey
}

// IsLocked reports the current lifecycle state.
func (kp *KeyPair) IsLocked() bool {
	return kp.locked
}

// PrivateKey returns the cleartext private key. Fails with
// ErrCodeLockedAccess while the pair is Locked.
func (kp *KeyPair) PrivateKey() (*secp256k1.PrivateKey, error) {
	if kp.locked {
		return nil, coreerrors.New(coreerrors.ErrCodeLockedAccess, "private key is locked")
	}
	return kp.privateKey, nil
}

// Sign produces a schnorr signature over data's hash using the
// cleartext private key, the node-identity counterpart to
// transaction.Transaction's ed25519 sender signatures. Fails while the
// pair is Locked.
func (kp *KeyPair) Sign(data []byte) (*schnorr.Signature, error) {
	priv, err := kp.PrivateKey()
	if err != nil {
		return nil, err
	}
	hash := sha256.Sum256(data)
	return schnorr.Sign(priv, hash[:])
}

// Verify checks sig against data's hash using this pair's public key.
func (kp *KeyPair) Verify(sig *schnorr.Signature, data []byte) bool {
	hash := sha256.Sum256(data)
	return sig.Verify(hash[:], kp.publicKey)
}

func deriveLockKey(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Lock transitions Unlocked -> Locked: it derives an AES key from key
// via scrypt, seals the cleartext private key under a fresh salt and
// nonce, and discards the cleartext.
func (kp *KeyPair) Lock(key []byte) error {
	if kp.locked {
		return errors.New("keypair: already locked")
	}

	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return err
	}
	lockKey, err := deriveLockKey(key, salt)
	if err != nil {
		return err
	}
	aead, err := newAEAD(lockKey)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}

	plaintext := kp.privateKey.Serialize()
	ciphertext := aead.Seal(nil, nonce, plaintext, nil)

	kp.encrypted = &encryptedBlob{Salt: salt, Nonce: nonce, Ciphertext: ciphertext}
	kp.lastKey = append([]byte(nil), key...)
	kp.privateKey = nil
	kp.locked = true
	return nil
}

// Unlock transitions Locked -> Unlocked if key matches the key last
// used to Lock. On mismatch the pair stays Locked and WrongKey is
// returned.
func (kp *KeyPair) Unlock(key []byte) error {
	if !kp.locked {
		return errors.New("keypair: already unlocked")
	}
	if kp.encrypted == nil {
		return coreerrors.New(coreerrors.ErrCodeWrongKey, "no encrypted material to unlock")
	}

	lockKey, err := deriveLockKey(key, kp.encrypted.Salt)
	if err != nil {
		return err
	}
	aead, err := newAEAD(lockKey)
	if err != nil {
		return err
	}

	plaintext, err := aead.Open(nil, kp.encrypted.Nonce, kp.encrypted.Ciphertext, nil)
	if err != nil {
		return coreerrors.New(coreerrors.ErrCodeWrongKey, "unlock key does not match")
	}

	priv := secp256k1.PrivKeyFromBytes(plaintext)
	kp.privateKey = priv
	kp.locked = false
	kp.lastKey = append([]byte(nil), key...)
	return nil
}

// Relock re-applies the last key used to Lock/Unlock, without the
// caller supplying it again.
func (kp *KeyPair) Relock() error {
	if kp.locked {
		return errors.New("keypair: already locked")
	}
	if kp.lastKey == nil {
		return errors.New("keypair: no prior key to relock with")
	}
	return kp.Lock(kp.lastKey)
}

// wireForm is what Serialize/Unserialize round-trip through JSON,
// matching the keystore envelope's own encoding choice.
type wireForm struct {
	PublicKey  []byte          `json:"public_key"`
	Locked     bool            `json:"locked"`
	PrivateKey []byte          `json:"private_key,omitempty"`
	Encrypted  *encryptedBlob  `json:"encrypted,omitempty"`
}

// Serialize preserves publicKey, isLocked, and (if unlocked)
// privateKey, so Unserialize(Serialize(k)) reproduces those fields. The
// key last used to Lock or Unlock is not serialized, so Relock on the
// result fails until Lock or Unlock has been called on it.
func (kp *KeyPair) Serialize() ([]byte, error) {
	w := wireForm{
		PublicKey: kp.publicKey.SerializeCompressed(),
		Locked:    kp.locked,
		Encrypted: kp.encrypted,
	}
	if !kp.locked {
		w.PrivateKey = kp.privateKey.Serialize()
	}
	return jsonx.Marshal(w)
}

// Unserialize reconstructs a KeyPair from Serialize's output.
func Unserialize(data []byte) (*KeyPair, error) {
	var w wireForm
	if err := jsonx.Unmarshal(data, &w); err != nil {
		return nil, err
	}

	pub, err := secp256k1.ParsePubKey(w.PublicKey)
	if err != nil {
		return nil, err
	}

	kp := &KeyPair{publicKey: pub, locked: w.Locked, encrypted: w.Encrypted}
	if !w.Locked {
		kp.privateKey = secp256k1.PrivKeyFromBytes(w.PrivateKey)
	}
	return kp, nil
}
