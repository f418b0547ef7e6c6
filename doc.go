/*

Package wallet defines interfaces used throughout the multisig wallet, such as: storage, messages,
handlers, events and identities. It also contains helpers to work with context and addresses.
Look into this package to get an brief overview of design decisions made around interfaces and
extension building blocks.

*/

package wallet
