package crypto

import (
	"bytes"
	"encoding/hex"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/wallettest/assert"
)

func TestEd25519Signing(t *testing.T) {
	private := GenPrivKeyEd25519()
	public := private.PublicKey()

	msg := []byte("foobar")
	msg2 := []byte("dingbooms")

	sig, err := private.Sign(msg)
	assert.Nil(t, err)
	sig2, err := private.Sign(msg2)
	assert.Nil(t, err)

	if bytes.Equal(sig, sig2) {
		t.Fatal("different messages produce the same signature")
	}

	if !public.Verify(msg, sig) {
		t.Fatal("cannot verify a message signed with this public key")
	}
	if !public.Verify(msg2, sig2) {
		t.Fatal("cannot verify a message signed with this public key")
	}

	if public.Verify(msg, sig2) {
		t.Fatal("verified message signature of the wrong message")
	}
	if public.Verify(msg, nil) {
		t.Fatal("verified a nil signature of a message")
	}
}

func TestEd25519Address(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	pub2 := GenPrivKeyEd25519().PublicKey()
	empty := PublicKey{}

	assert.Nil(t, pub.Condition().Validate())
	assert.Nil(t, pub2.Condition().Validate())
	if bytes.Equal(pub.Condition(), pub2.Condition()) {
		t.Fatal("different public keys produce the same condition")
	}
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
	assert.Nil(t, pub.Address().Validate())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	cases := map[string]struct {
		seed    string
		wantPub string
	}{
		"rfc8032 test vector 1": {
			seed:    "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60",
			wantPub: "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
		},
		"rfc8032 test vector 2": {
			seed:    "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb",
			wantPub: "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			seed, err := hex.DecodeString(tc.seed)
			assert.Nil(t, err)
			priv := PrivKeyEd25519FromSeed(seed)
			pub := priv.PublicKey().(*PublicKey)
			assert.Equal(t, tc.wantPub, hex.EncodeToString(pub.Ed25519))
		})
	}
}

func TestKeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "keyfile")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "key.json")
	key := GenPrivKeyEd25519()
	assert.Nil(t, SaveKey(path, key))

	loaded, err := LoadKey(path)
	assert.Nil(t, err)
	assert.Equal(t, key.Ed25519, loaded.Ed25519)

	// Existing key is never overwritten.
	if err := SaveKey(path, GenPrivKeyEd25519()); !errors.ErrDuplicate.Is(err) {
		t.Fatalf("want duplicate error, got %+v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	assert.Nil(t, ioutil.WriteFile(broken, []byte(`{"type": "secp256k1"}`), 0600))
	if _, err := LoadKey(broken); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
}
