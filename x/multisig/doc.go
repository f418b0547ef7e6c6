/*
Package multisig implements a wallet controlled by a set of owners.

Any owner can submit a transaction: a call to a destination address carrying
a value and an opaque payload. The submitter confirms the transaction
implicitly. Other owners confirm or revoke their confirmation. As soon as the
number of confirmations from current owners reaches the required threshold,
the transaction is executed in the same call that crossed the threshold.

The owner set and the threshold are governed by the wallet itself. A
transaction whose destination is the wallet's own address is a self-call: its
payload is decoded as an ABI encoded governance call (addOwner, removeOwner,
replaceOwner or changeRequirement) and delivered to the owner registry with a
self-call tag attached to the context. The registry accepts mutations only
when that tag is present.

Calls to any other destination are performed by a Caller. A failing call is
not an error of the operation that triggered it. The transaction remains
confirmable and can be executed again later.

Engine binds all of the above to a store, serializes access and publishes the
events of committed operations. An Initializer can deploy the wallet from a
genesis file.
*/
package multisig
