package index

import blogindexes "github.com/goliatone/go-blog/indexes"

type Index = blogindexes.Index
type IndexEntry = blogindexes.IndexEntry
type PostRef = blogindexes.PostRef
