package position

import "context"

type PositionRepository interface {
	GetByID(ctx context.Context, id string) (Position, error)
}
