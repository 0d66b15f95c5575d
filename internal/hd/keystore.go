package hd

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

const (
	keystoreVersion = 3
	keystoreCipher  = "aes-128-ctr"
	keystoreKDF     = "scrypt"

	saltLength = 32
	ivLength   = aes.BlockSize

	// scrypt needs 128*N*R bytes; the cap admits StandardScryptParams (256 MiB).
	maxScryptNR    = 1 << 21
	maxScryptP     = 16
	minScryptDKLen = 32
	maxScryptDKLen = 64
)

var (
	ErrWrongPassword       = errors.New("invalid password: MAC mismatch")
	ErrInvalidScryptParams = errors.New("invalid scrypt parameters")
)

// Keystore is a mnemonic encrypted in the Ethereum keystore v3 layout.
type Keystore struct {
	Version int            `json:"version"`
	ID      string         `json:"id"`
	Crypto  KeystoreCrypto `json:"crypto"`
}

type KeystoreCrypto struct {
	Ciphertext   string `json:"ciphertext"`
	CipherParams struct {
		IV string `json:"iv"`
	} `json:"cipherparams"`
	Cipher    string       `json:"cipher"`
	KDF       string       `json:"kdf"`
	KDFParams ScryptParams `json:"kdfparams"`
	MAC       string       `json:"mac"`
}

// ScryptParams are the scrypt KDF parameters. Salt is hex encoded.
type ScryptParams struct {
	DKLen int    `json:"dklen"`
	Salt  string `json:"salt"`
	N     int    `json:"n"`
	R     int    `json:"r"`
	P     int    `json:"p"`
}

// StandardScryptParams are the go-ethereum defaults.
func StandardScryptParams() ScryptParams {
	return ScryptParams{DKLen: 32, N: 1 << 18, R: 8, P: 1}
}

// LightScryptParams trade security for speed. Only use them for tests and throwaway keys.
func LightScryptParams() ScryptParams {
	return ScryptParams{DKLen: 32, N: 1 << 12, R: 8, P: 6}
}

// Validate bounds the parameters before any memory is committed to the KDF.
// N has to be a power of two above one.
func (p ScryptParams) Validate() error {
	switch {
	case p.DKLen < minScryptDKLen || p.DKLen > maxScryptDKLen:
		return errors.Wrapf(ErrInvalidScryptParams, "dklen %d out of range [%d, %d]", p.DKLen, minScryptDKLen, maxScryptDKLen)
	case p.N <= 1 || p.N&(p.N-1) != 0:
		return errors.Wrapf(ErrInvalidScryptParams, "n %d is not a power of two", p.N)
	case p.R <= 0 || p.P <= 0 || p.P > maxScryptP:
		return errors.Wrapf(ErrInvalidScryptParams, "r %d, p %d", p.R, p.P)
	case p.N > maxScryptNR/p.R:
		return errors.Wrapf(ErrInvalidScryptParams, "n*r %d*%d exceeds %d", p.N, p.R, maxScryptNR)
	}
	return nil
}

// EncryptMnemonic encrypts mnemonic with a key derived from password.
func EncryptMnemonic(mnemonic string, password string, params ScryptParams) (*Keystore, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(err, "failed to generate salt")
	}

	//nolint:varnamelen // iv is a common abbreviation for initialization vector
	iv := make([]byte, ivLength)
	if _, err := rand.Read(iv); err != nil {
		return nil, errors.Wrap(err, "failed to generate IV")
	}

	params.Salt = hex.EncodeToString(salt)
	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive key")
	}
	defer clear(derivedKey)

	ciphertext, err := aes128CTR(derivedKey[:16], iv, []byte(mnemonic))
	if err != nil {
		return nil, err
	}

	ks := &Keystore{
		Version: keystoreVersion,
		ID:      uuid.New().String(),
	}
	ks.Crypto.Ciphertext = hex.EncodeToString(ciphertext)
	ks.Crypto.CipherParams.IV = hex.EncodeToString(iv)
	ks.Crypto.Cipher = keystoreCipher
	ks.Crypto.KDF = keystoreKDF
	ks.Crypto.KDFParams = params
	ks.Crypto.MAC = hex.EncodeToString(keystoreMAC(derivedKey[16:32], ciphertext))

	return ks, nil
}

// DecryptMnemonic reverses EncryptMnemonic. A wrong password yields ErrWrongPassword.
func DecryptMnemonic(ks *Keystore, password string) (string, error) {
	if ks.Version != keystoreVersion || ks.Crypto.Cipher != keystoreCipher || ks.Crypto.KDF != keystoreKDF {
		return "", errors.Errorf("unsupported keystore: version %d, cipher %s, kdf %s", ks.Version, ks.Crypto.Cipher, ks.Crypto.KDF)
	}

	params := ks.Crypto.KDFParams
	if err := params.Validate(); err != nil {
		return "", err
	}

	salt, err := hex.DecodeString(params.Salt)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode salt")
	}
	//nolint:varnamelen // iv is a common abbreviation for initialization vector
	iv, err := hex.DecodeString(ks.Crypto.CipherParams.IV)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode IV")
	}
	if len(iv) != ivLength {
		return "", errors.Errorf("IV must be %d bytes, got %d", ivLength, len(iv))
	}
	ciphertext, err := hex.DecodeString(ks.Crypto.Ciphertext)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode ciphertext")
	}
	expectedMAC, err := hex.DecodeString(ks.Crypto.MAC)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode MAC")
	}

	derivedKey, err := scrypt.Key([]byte(password), salt, params.N, params.R, params.P, params.DKLen)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive key")
	}
	defer clear(derivedKey)

	// Verify MAC
	if subtle.ConstantTimeCompare(keystoreMAC(derivedKey[16:32], ciphertext), expectedMAC) != 1 {
		return "", ErrWrongPassword
	}

	plaintext, err := aes128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// WriteKeystore stores ks as JSON, readable by the owner only.
func WriteKeystore(path string, ks *Keystore) error {
	data, err := json.MarshalIndent(ks, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal keystore")
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "failed to write keystore %s", path)
	}
	return nil
}

func ReadKeystore(path string) (*Keystore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read keystore %s", path)
	}

	var ks Keystore
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, errors.Wrap(err, "failed to parse keystore")
	}
	return &ks, nil
}

// aes128CTR is its own inverse.
//
//nolint:varnamelen
func aes128CTR(key []byte, iv []byte, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create cipher")
	}

	out := make([]byte, len(in))
	cipher.NewCTR(block, iv).XORKeyStream(out, in)
	return out, nil
}

// keystoreMAC is keccak256(derivedKey[16:32] || ciphertext).
func keystoreMAC(key []byte, ciphertext []byte) []byte {
	return crypto.Keccak256(key, ciphertext)
}
