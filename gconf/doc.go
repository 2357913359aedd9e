/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration.

Each package keeps a single configuration entity. It can be loaded from the
genesis file and later patched by an authorized transaction. Configuration
entities are protobuf messages with a Validate method.
*/
package gconf
