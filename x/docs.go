/*
Package x contains the extensions the wallet is assembled from.

The package itself defines how a caller identity is read from the context
(Authenticator). Sub-packages provide the decorators (utils) and the
multisig wallet engine (multisig).
*/
package x
