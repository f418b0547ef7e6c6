package multisig

import (
	"github.com/iov-one/wallet"
	"github.com/iov-one/wallet/errors"
	"github.com/iov-one/wallet/gconf"
)

// configurationPkg is the name under which the owner registry is stored.
const configurationPkg = "multisig"

// LoadConfiguration returns the owner registry state. ErrNotFound is
// returned if the wallet was not deployed in given store.
func LoadConfiguration(db wallet.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, configurationPkg, &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}

func saveConfiguration(db wallet.KVStore, conf *Configuration) error {
	if err := gconf.Save(db, configurationPkg, conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	return nil
}

// addOwner appends an owner. The threshold is not changed.
func (c *Configuration) addOwner(owner wallet.Address) error {
	if err := validateOwner("Owner", owner); err != nil {
		return err
	}
	if c.IsOwner(owner) {
		return errors.Wrapf(errors.ErrDuplicate, "%s is already an owner", owner)
	}
	if len(c.Owners) >= MaxOwners {
		return errors.Wrapf(errors.ErrState, "wallet cannot have more than %d owners", MaxOwners)
	}
	c.Owners = append(c.Owners, owner)
	return nil
}

// removeOwner removes an owner, keeping the order of the remaining ones. If
// there are not enough owners left to reach the threshold, the threshold is
// lowered to the owner count and true is returned.
func (c *Configuration) removeOwner(owner wallet.Address) (bool, error) {
	i := c.indexOf(owner)
	if i < 0 {
		return false, errors.Wrapf(errors.ErrNotFound, "%s is not an owner", owner)
	}
	if len(c.Owners) == 1 {
		return false, errors.Wrap(errors.ErrState, "cannot remove the last owner")
	}
	owners := make([]wallet.Address, 0, len(c.Owners)-1)
	owners = append(owners, c.Owners[:i]...)
	c.Owners = append(owners, c.Owners[i+1:]...)

	if n := uint64(len(c.Owners)); c.Required > n {
		c.Required = n
		return true, nil
	}
	return false, nil
}

// replaceOwner puts the new owner at the position of the old one.
func (c *Configuration) replaceOwner(owner, newOwner wallet.Address) error {
	i := c.indexOf(owner)
	if i < 0 {
		return errors.Wrapf(errors.ErrNotFound, "%s is not an owner", owner)
	}
	if err := validateOwner("NewOwner", newOwner); err != nil {
		return err
	}
	if c.IsOwner(newOwner) {
		return errors.Wrapf(errors.ErrDuplicate, "%s is already an owner", newOwner)
	}
	owners := append([]wallet.Address(nil), c.Owners...)
	owners[i] = newOwner
	c.Owners = owners
	return nil
}

func (c *Configuration) changeRequirement(required uint64) error {
	if required == 0 || required > uint64(len(c.Owners)) {
		return errors.Wrapf(errors.ErrInput, "required must be between 1 and %d, got %d", len(c.Owners), required)
	}
	c.Required = required
	return nil
}

// registerGovernanceRoutes registers the handlers of the messages that
// modify the owner registry. All of them reject calls without the self-call
// tag.
func registerGovernanceRoutes(r wallet.Registry) {
	r.Handle(pathAddOwnerMsg, AddOwnerHandler{})
	r.Handle(pathRemoveOwnerMsg, RemoveOwnerHandler{})
	r.Handle(pathReplaceOwnerMsg, ReplaceOwnerHandler{})
	r.Handle(pathChangeRequirementMsg, ChangeRequirementHandler{})
}

// loadGoverned returns the registry state after ensuring that the call
// comes from the wallet itself.
func loadGoverned(ctx wallet.Context, db wallet.KVStore) (*Configuration, error) {
	conf, err := LoadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if err := requireSelfCall(ctx, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

type AddOwnerHandler struct{}

var _ wallet.Handler = AddOwnerHandler{}

func (AddOwnerHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, err := loadGoverned(ctx, db)
	if err != nil {
		return nil, err
	}
	var msg *AddOwnerMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := conf.addOwner(msg.Owner); err != nil {
		return nil, err
	}
	if err := saveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{
		Events: []wallet.Event{OwnerAdditionEvent{Owner: msg.Owner}},
	}, nil
}

type RemoveOwnerHandler struct{}

var _ wallet.Handler = RemoveOwnerHandler{}

func (RemoveOwnerHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, err := loadGoverned(ctx, db)
	if err != nil {
		return nil, err
	}
	var msg *RemoveOwnerMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	clamped, err := conf.removeOwner(msg.Owner)
	if err != nil {
		return nil, err
	}
	if err := saveConfiguration(db, conf); err != nil {
		return nil, err
	}
	events := []wallet.Event{OwnerRemovalEvent{Owner: msg.Owner}}
	if clamped {
		events = append(events, RequirementChangeEvent{Required: conf.Required})
	}
	return &wallet.DeliverResult{Events: events}, nil
}

type ReplaceOwnerHandler struct{}

var _ wallet.Handler = ReplaceOwnerHandler{}

func (ReplaceOwnerHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, err := loadGoverned(ctx, db)
	if err != nil {
		return nil, err
	}
	var msg *ReplaceOwnerMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := conf.replaceOwner(msg.Owner, msg.NewOwner); err != nil {
		return nil, err
	}
	if err := saveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{
		Events: []wallet.Event{
			OwnerRemovalEvent{Owner: msg.Owner},
			OwnerAdditionEvent{Owner: msg.NewOwner},
		},
	}, nil
}

type ChangeRequirementHandler struct{}

var _ wallet.Handler = ChangeRequirementHandler{}

func (ChangeRequirementHandler) Deliver(ctx wallet.Context, db wallet.KVStore, tx wallet.Tx) (*wallet.DeliverResult, error) {
	conf, err := loadGoverned(ctx, db)
	if err != nil {
		return nil, err
	}
	var msg *ChangeRequirementMsg
	if err := wallet.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := conf.changeRequirement(msg.Required); err != nil {
		return nil, err
	}
	if err := saveConfiguration(db, conf); err != nil {
		return nil, err
	}
	return &wallet.DeliverResult{
		Events: []wallet.Event{RequirementChangeEvent{Required: msg.Required}},
	}, nil
}
