package posts

import "errors"

var (
	ErrPostNotFound      = errors.New("posts: post not found")
	ErrPostExists        = errors.New("posts: post already exists")
	ErrPostImmutable     = errors.New("posts: post content drifted; replace explicitly")
	ErrSlugRequired      = errors.New("posts: slug is required")
	ErrSlugInvalid       = errors.New("posts: slug contains invalid characters")
	ErrTitleRequired     = errors.New("posts: title is required")
	ErrDateRequired      = errors.New("posts: publish date is required")
	ErrPathRequired      = errors.New("posts: path is required")
	ErrChecksumRequired  = errors.New("posts: checksum is required")
)
