/*
Package idmtest provides mocks and helpers that make testing of the
registry extensions and the application easier. Nothing in this package
should be used outside of tests.
*/
package idmtest
