package posts

import blogposts "github.com/goliatone/go-blog/posts"

type Post = blogposts.Post
