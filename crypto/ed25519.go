package crypto

import (
	"encoding/hex"
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"golang.org/x/crypto/ed25519"
)

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte
}

var _ PubKey = (*PublicKey)(nil)

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if len(p.Ed25519) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a wallet identity condition
func (p *PublicKey) Condition() wallet.Condition {
	if len(p.Ed25519) == 0 {
		return nil
	}
	return wallet.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the owner address of this key.
func (p *PublicKey) Address() wallet.Address {
	return p.Condition().Address()
}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte
}

var _ Signer = (*PrivateKey)(nil)

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrState, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() PubKey {
	privateKey := ed25519.PrivateKey(p.Ed25519)
	pub := privateKey.Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

type keyFile struct {
	Type    string `json:"type"`
	Private string `json:"private"`
	Address string `json:"address"`
}

// SaveKey writes the private key to a JSON file that only the owner of the
// process can read.
func SaveKey(path string, key *PrivateKey) error {
	raw, err := json.MarshalIndent(keyFile{
		Type:    "ed25519",
		Private: hex.EncodeToString(key.Ed25519),
		Address: key.PublicKey().Address().String(),
	}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize key")
	}
	if _, err := os.Stat(path); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "key file %q exists", path)
	}
	if err := ioutil.WriteFile(path, raw, 0600); err != nil {
		return errors.Wrap(err, "cannot write key file")
	}
	return nil
}

// LoadKey reads a private key previously written with SaveKey.
func LoadKey(path string) (*PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read key file")
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode key file")
	}
	if kf.Type != "ed25519" {
		return nil, errors.Wrapf(errors.ErrType, "unsupported key type %q", kf.Type)
	}
	priv, err := hex.DecodeString(kf.Private)
	if err != nil || len(priv) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "malformed private key")
	}
	return &PrivateKey{Ed25519: priv}, nil
}
