package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/store"
	"github.com/iov-one/wallet/wallettest/assert"
)

// config is a minimal configuration, serialized as JSON for simplicity.
type config struct {
	Number int64
	Text   string
}

func (c *config) Validate() error {
	if c.Number < 0 {
		return errors.Field("Number", errors.ErrInput, "must not be negative")
	}
	return nil
}

func (c *config) Marshal() ([]byte, error) {
	return json.Marshal(c)
}

func (c *config) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, c)
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *config
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &config{Number: 852151421, Text: "foobar"},
		},
		"zero value": {
			Conf: &config{},
		},
		"invalid cannot be saved": {
			Conf:        &config{Number: -1},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "mypkg", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			ok, err := Exists(db, "mypkg")
			assert.Nil(t, err)
			if tc.WantSaveErr != nil {
				assert.Equal(t, false, ok)
				return
			}
			assert.Equal(t, true, ok)

			var got config
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var c config
	assert.IsErr(t, errors.ErrNotFound, Load(db, "mypkg", &c))
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		opts    wallet.Options
		wantErr *errors.Error
		want    config
	}{
		"valid": {
			opts: wallet.Options{"mypkg": []byte(`{"Number": 3, "Text": "three"}`)},
			want: config{Number: 3, Text: "three"},
		},
		"missing section": {
			opts:    wallet.Options{"other": []byte(`{}`)},
			wantErr: errors.ErrNotFound,
		},
		"malformed section": {
			opts:    wallet.Options{"mypkg": []byte(`[]`)},
			wantErr: errors.ErrInput,
		},
		"invalid configuration": {
			opts:    wallet.Options{"mypkg": []byte(`{"Number": -4}`)},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			var c config
			err := InitConfig(db, tc.opts, "mypkg", &c)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			var got config
			assert.Nil(t, Load(db, "mypkg", &got))
			assert.Equal(t, tc.want, got)
		})
	}
}
