package interfaces

import "context"

// Storage operation names understood by artifact-writing providers. Providers
// receive the operation name plus positional arguments and may reject
// operations they do not support.
const (
	StorageOpEnsureDir = "storage.ensure_dir"
	StorageOpWriteFile = "storage.write_file"
	StorageOpRemoveAll = "storage.remove_all"
)

// StorageProvider abstracts where generated artifacts land. The filesystem
// provider writes below an output root; a no-op provider satisfies tests and
// dry runs.
type StorageProvider interface {
	Exec(ctx context.Context, op string, args ...any) error
}
