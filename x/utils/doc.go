/*
Package utils contains decorators that are not tied to any extension:
transaction isolation (Savepoint), panic recovery, logging, tagging and
prometheus metrics.
*/
package utils
