package postgresadapter

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator issues RFC 4122 v4 ids for voter rows.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
