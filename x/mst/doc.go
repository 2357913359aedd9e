/*
Package mst implements multi signature transactions for owner management.

Adding, activating, deactivating and transferring an owner are privileged
registry operations. Any active owner can submit such an operation as a
pending transaction. Owners sign it one by one, and any owner can execute it
once the number of signatures reached the quorum kept by the object
registry. A signature can be revoked until the transaction is executed.
Executed transactions are final.

Transactions are never executed automatically and a pending transaction
never expires.
*/
package mst
