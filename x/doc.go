/*
Package x contains some standard extensions

Extensions are a set of functionality that can be plugged into an
application. The registry, the multi signature engine and the signature
authentication all live in sub packages. This package holds the
interfaces shared between them.
*/
package x
