package multisig

import (
	"strconv"

	"github.com/iov-one/wallet"
)

// Event names.
const (
	EventOwnerAddition     = "OwnerAddition"
	EventOwnerRemoval      = "OwnerRemoval"
	EventRequirementChange = "RequirementChange"
	EventSubmission        = "Submission"
	EventConfirmation      = "Confirmation"
	EventRevocation        = "Revocation"
	EventExecution         = "Execution"
	EventExecutionFailure  = "ExecutionFailure"
)

// OwnerAdditionEvent is emitted when an owner joins the owner set.
type OwnerAdditionEvent struct {
	Owner wallet.Address
}

func (OwnerAdditionEvent) Name() string { return EventOwnerAddition }

func (e OwnerAdditionEvent) Attributes() map[string]string {
	return map[string]string{"owner": e.Owner.String()}
}

// OwnerRemovalEvent is emitted when an owner leaves the owner set.
type OwnerRemovalEvent struct {
	Owner wallet.Address
}

func (OwnerRemovalEvent) Name() string { return EventOwnerRemoval }

func (e OwnerRemovalEvent) Attributes() map[string]string {
	return map[string]string{"owner": e.Owner.String()}
}

// RequirementChangeEvent is emitted when the threshold changes, either
// explicitly or because an owner removal lowered it.
type RequirementChangeEvent struct {
	Required uint64
}

func (RequirementChangeEvent) Name() string { return EventRequirementChange }

func (e RequirementChangeEvent) Attributes() map[string]string {
	return map[string]string{"required": strconv.FormatUint(e.Required, 10)}
}

type SubmissionEvent struct {
	TransactionID uint64
}

func (SubmissionEvent) Name() string { return EventSubmission }

func (e SubmissionEvent) Attributes() map[string]string {
	return map[string]string{"transaction_id": strconv.FormatUint(e.TransactionID, 10)}
}

type ConfirmationEvent struct {
	Sender        wallet.Address
	TransactionID uint64
}

func (ConfirmationEvent) Name() string { return EventConfirmation }

func (e ConfirmationEvent) Attributes() map[string]string {
	return map[string]string{
		"sender":         e.Sender.String(),
		"transaction_id": strconv.FormatUint(e.TransactionID, 10),
	}
}

type RevocationEvent struct {
	Sender        wallet.Address
	TransactionID uint64
}

func (RevocationEvent) Name() string { return EventRevocation }

func (e RevocationEvent) Attributes() map[string]string {
	return map[string]string{
		"sender":         e.Sender.String(),
		"transaction_id": strconv.FormatUint(e.TransactionID, 10),
	}
}

// ExecutionEvent is emitted after the call of a transaction succeeded.
type ExecutionEvent struct {
	TransactionID uint64
}

func (ExecutionEvent) Name() string { return EventExecution }

func (e ExecutionEvent) Attributes() map[string]string {
	return map[string]string{"transaction_id": strconv.FormatUint(e.TransactionID, 10)}
}

// ExecutionFailureEvent is emitted when the call of a transaction failed.
// The transaction can be executed again.
type ExecutionFailureEvent struct {
	TransactionID uint64
}

func (ExecutionFailureEvent) Name() string { return EventExecutionFailure }

func (e ExecutionFailureEvent) Attributes() map[string]string {
	return map[string]string{"transaction_id": strconv.FormatUint(e.TransactionID, 10)}
}
