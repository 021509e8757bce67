// Package all wires the built-in storage backends into the storage factory.
//
// It exists purely for side effects: blank-importing it runs the init
// functions of each backend, which register their factories and DDL
// bootstrappers with the storage package. Binaries that only need one backend
// can import that backend package directly instead.
package all

import (
	_ "addretl/internal/storage/postgres"
	_ "addretl/internal/storage/sqlite"
)
