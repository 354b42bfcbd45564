package bank

import "github.com/xraph/bank/id"

// ID is the primary identifier type for all bank entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
