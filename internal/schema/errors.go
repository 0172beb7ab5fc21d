package schema

import "errors"

var ErrInvalidSchemaVersion = errors.New("schema: invalid schema version")
