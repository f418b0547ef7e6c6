/*
Package events delivers the events of committed wallet operations to
observers.

Bus republishes events on a tendermint pubsub server. Every event is
published with its name and attributes as pubsub tags, prefixed with a
namespace, so that subscribers can filter them with a query such as

	multisig.event = 'Execution' AND multisig.transaction_id = '4'

Recorder keeps all events in memory and is meant for tests and tools that
inspect the outcome of a single call.
*/
package events
