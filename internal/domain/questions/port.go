package questions

import "context"

// Repository port for persisting and querying past analyses
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Analysis, error)
}

// ArtifactStore port for archiving uploaded documents
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
