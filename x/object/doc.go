/*
Package object implements the identity registry.

Every registered address is an identity object with exactly one role: user,
owner, admin or system. Admins and system addresses are added by an address
holding the admin privilege, users register themselves and start inactive.
Owners are registered when the system is initialized and later only through
a multi signature transaction (see package mst), which is why the owner
mutations of the Registry are not reachable from the messages handled here.

The registry keeps a total and an active counter per role, and the quorum of
owner signatures required to execute a multi signature transaction, which is
a strict majority of the active owners.
*/
package object
