package multisig

import (
	"reflect"
	"testing"

	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/wallettest"
	"github.com/iov-one/wallet/wallettest/assert"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestConfigurationValidate(t *testing.T) {
	a := wallettest.NewCondition().Address()
	b := wallettest.NewCondition().Address()
	c := wallettest.NewCondition().Address()

	tooMany := make([]wallet.Address, MaxOwners+1)
	for i := range tooMany {
		tooMany[i] = wallettest.NewCondition().Address()
	}

	cases := map[string]struct {
		conf     Configuration
		wantErrs map[string]*errors.Error
	}{
		"valid": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b, c}, Required: 2},
			wantErrs: map[string]*errors.Error{
				"Address":  nil,
				"Owners":   nil,
				"Required": nil,
			},
		},
		"single owner": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a}, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Owners":   nil,
				"Required": nil,
			},
		},
		"missing address": {
			conf: Configuration{Owners: []wallet.Address{a}, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Address": errors.ErrEmpty,
			},
		},
		"no owners": {
			conf: Configuration{Address: DefaultAddress, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Owners":   errors.ErrEmpty,
				"Required": errors.ErrInput,
			},
		},
		"duplicated owner": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b, a}, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Owners": errors.ErrDuplicate,
			},
		},
		"zero owner": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, make(wallet.Address, wallet.AddressLength)}, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Owners": errors.ErrEmpty,
			},
		},
		"too many owners": {
			conf: Configuration{Address: DefaultAddress, Owners: tooMany, Required: 1},
			wantErrs: map[string]*errors.Error{
				"Owners": errors.ErrInput,
			},
		},
		"zero required": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b}, Required: 0},
			wantErrs: map[string]*errors.Error{
				"Required": errors.ErrInput,
			},
		},
		"required above owner count": {
			conf: Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b}, Required: 3},
			wantErrs: map[string]*errors.Error{
				"Required": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.conf.Validate()
			for field, want := range tc.wantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestModelSerialization(t *testing.T) {
	a := wallettest.NewCondition().Address()
	b := wallettest.NewCondition().Address()

	conf := Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b}, Required: 2}
	raw, err := conf.Marshal()
	assert.Nil(t, err)
	var gotConf Configuration
	assert.Nil(t, gotConf.Unmarshal(raw))
	assert.Equal(t, conf, gotConf)

	tx := Transaction{Destination: a, Value: 7, Data: []byte("payload"), Executed: true}
	raw, err = tx.Marshal()
	assert.Nil(t, err)
	var gotTx Transaction
	assert.Nil(t, gotTx.Unmarshal(raw))
	assert.Equal(t, tx, gotTx)

	// Unmarshal must reset a reused instance.
	pending := Transaction{Destination: b}
	raw, err = pending.Marshal()
	assert.Nil(t, err)
	assert.Nil(t, gotTx.Unmarshal(raw))
	assert.Equal(t, pending, gotTx)
}

func TestRegistryOperations(t *testing.T) {
	a := wallettest.NewCondition().Address()
	b := wallettest.NewCondition().Address()
	c := wallettest.NewCondition().Address()
	d := wallettest.NewCondition().Address()

	newConf := func() *Configuration {
		return &Configuration{Address: DefaultAddress, Owners: []wallet.Address{a, b, c}, Required: 3}
	}

	t.Run("add owner", func(t *testing.T) {
		conf := newConf()
		assert.Nil(t, conf.addOwner(d))
		assert.Equal(t, []wallet.Address{a, b, c, d}, conf.Owners)
		assert.Equal(t, uint64(3), conf.Required)

		assert.IsErr(t, errors.ErrDuplicate, conf.addOwner(b))
		assert.IsErr(t, errors.ErrEmpty, conf.addOwner(nil))
		assert.IsErr(t, errors.ErrEmpty, conf.addOwner(make(wallet.Address, wallet.AddressLength)))
		assert.Equal(t, []wallet.Address{a, b, c, d}, conf.Owners)
	})

	t.Run("add owner above the limit", func(t *testing.T) {
		conf := &Configuration{Address: DefaultAddress, Required: 1}
		for i := 0; i < MaxOwners; i++ {
			assert.Nil(t, conf.addOwner(wallettest.NewCondition().Address()))
		}
		assert.IsErr(t, errors.ErrState, conf.addOwner(d))
	})

	t.Run("remove owner clamps the threshold", func(t *testing.T) {
		conf := newConf()
		clamped, err := conf.removeOwner(b)
		assert.Nil(t, err)
		assert.Equal(t, true, clamped)
		assert.Equal(t, []wallet.Address{a, c}, conf.Owners)
		assert.Equal(t, uint64(2), conf.Required)
	})

	t.Run("remove owner keeps a reachable threshold", func(t *testing.T) {
		conf := newConf()
		conf.Required = 1
		clamped, err := conf.removeOwner(a)
		assert.Nil(t, err)
		assert.Equal(t, false, clamped)
		assert.Equal(t, []wallet.Address{b, c}, conf.Owners)
		assert.Equal(t, uint64(1), conf.Required)
	})

	t.Run("remove unknown or last owner", func(t *testing.T) {
		conf := newConf()
		_, err := conf.removeOwner(d)
		assert.IsErr(t, errors.ErrNotFound, err)

		single := &Configuration{Address: DefaultAddress, Owners: []wallet.Address{a}, Required: 1}
		_, err = single.removeOwner(a)
		assert.IsErr(t, errors.ErrState, err)
		assert.Equal(t, []wallet.Address{a}, single.Owners)
	})

	t.Run("replace owner keeps the position", func(t *testing.T) {
		conf := newConf()
		assert.Nil(t, conf.replaceOwner(b, d))
		assert.Equal(t, []wallet.Address{a, d, c}, conf.Owners)
	})

	t.Run("replace owner failures do not modify owners", func(t *testing.T) {
		conf := newConf()
		assert.IsErr(t, errors.ErrDuplicate, conf.replaceOwner(a, b))
		assert.IsErr(t, errors.ErrDuplicate, conf.replaceOwner(a, a))
		assert.IsErr(t, errors.ErrNotFound, conf.replaceOwner(d, a))
		assert.IsErr(t, errors.ErrNotFound, conf.replaceOwner(d, d))
		assert.IsErr(t, errors.ErrEmpty, conf.replaceOwner(a, nil))
		assert.Equal(t, []wallet.Address{a, b, c}, conf.Owners)
	})

	t.Run("change requirement", func(t *testing.T) {
		conf := newConf()
		assert.Nil(t, conf.changeRequirement(1))
		assert.Equal(t, uint64(1), conf.Required)
		assert.IsErr(t, errors.ErrInput, conf.changeRequirement(0))
		assert.IsErr(t, errors.ErrInput, conf.changeRequirement(4))
		assert.Equal(t, uint64(1), conf.Required)
	})
}

// TestRegistryInvariants applies random sequences of governance operations
// and checks that the configuration is always valid and that a failed
// operation does not change anything.
func TestRegistryInvariants(t *testing.T) {
	pool := make([]wallet.Address, 6)
	for i := range pool {
		pool[i] = wallettest.NewCondition().Address()
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("governance keeps the registry valid", prop.ForAll(
		func(required int, ops []int) bool {
			conf := &Configuration{
				Address:  DefaultAddress,
				Owners:   []wallet.Address{pool[0], pool[1], pool[2]},
				Required: uint64(required),
			}
			for _, op := range ops {
				before := cloneConfiguration(conf)

				owner := pool[(op/4)%len(pool)]
				arg := op / 24
				var err error
				switch op % 4 {
				case 0:
					err = conf.addOwner(owner)
				case 1:
					_, err = conf.removeOwner(owner)
				case 2:
					err = conf.replaceOwner(owner, pool[arg%len(pool)])
				case 3:
					err = conf.changeRequirement(uint64(arg))
				}

				if err != nil && !reflect.DeepEqual(before, conf) {
					return false
				}
				if conf.Validate() != nil {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 3),
		gen.SliceOf(gen.IntRange(0, 143)),
	))

	properties.TestingRun(t)
}

func cloneConfiguration(c *Configuration) *Configuration {
	return &Configuration{
		Address:  c.Address,
		Owners:   append([]wallet.Address(nil), c.Owners...),
		Required: c.Required,
	}
}
