package core

// WithMiddleware appends interceptor stages to the dispatch pipeline, in
// order: the first stage listed is the outermost wrapper.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Store) {
		s.middleware = append(s.middleware, mw...)
	}
}

// WithStoreID overrides the generated store identifier. Required when
// restoring persisted snapshots across processes.
func WithStoreID(id string) Option {
	return func(s *Store) {
		s.id = id
	}
}

// WithPersister configures the Store with a post-commit snapshot Persister.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithPublisher configures the Store with a post-commit action Publisher.
func WithPublisher(pb Publisher) Option {
	return func(s *Store) {
		s.publisher = pb
	}
}

// WithRegistry configures the Store with a Registry for versioning snapshots.
func WithRegistry(r Registry) Option {
	return func(s *Store) {
		s.registry = r
	}
}
