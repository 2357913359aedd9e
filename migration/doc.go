/*
Package migration provides tooling necessary for working with schema versioned
entities. Functionality provided here can be applied both to messages and
models.

The schema version is declared per package, not per entity. The current
version of every package is stored in the ledger, so that all nodes agree on
it and an upgrade is a regular, signed transaction.

Global preparation.

1. update application genesis to provide "initialize_schema" configuration,
listing all packages that use schema versioning,

2. register migration message handlers using `RegisterRoutes` function,

3. register the schema bucket query using `RegisterQuery` function.

Extension integration.

1. every schema versioned entity must carry metadata as its first attribute
and implement the Migratable interface,

2. register migration functions in package `init`. Each upgrade must provide
a migration function for all entities of the package. Use
`migration.NoModification` for those entities that require no change:

    func init() {
        migration.MustRegister(1, &MyModel{}, migration.NoModification)
        migration.MustRegister(1, &MyMsg{}, migration.NoModification)
    }

3. wrap the orm.ModelBucket with `migration.NewModelBucket`,

4. wrap your handler with `migration.SchemaMigratingHandler` to ensure all
messages are always migrated to the latest schema before being passed to the
handler.
*/
package migration
