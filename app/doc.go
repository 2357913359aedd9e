/*
Package app contains standard implementations of a number of components.

It is a good place to look for examples of implementing
your own code, or to import these components to use in
your own application.

The most important pieces are the Router, which dispatches messages
to handlers by their path, ChainDecorators to compose middleware, and
BaseApp, which implements the full ABCI application on top of a
CommitKVStore. Ledger runs the same stack in process, without tendermint.
*/
package app
