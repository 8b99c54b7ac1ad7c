package store

import (
	"blackarrow-backend/internal/database"
	"blackarrow-backend/internal/env"
	"context"
	"fmt"
	"strings"
)

const (
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open builds the store named by driver from the process environment.
func Open(ctx context.Context, driver string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverDynamoDB, "":
		client, err := database.NewDynamoDBClient()
		if err != nil {
			return nil, fmt.Errorf("init dynamodb client: %w", err)
		}
		return NewDynamo(client, env.GetOrDefault(env.TablePrefix, "blackarrow-")), nil
	case DriverPostgres:
		db, err := database.OpenPostgres(ctx, env.MustGet(env.DatabaseURL))
		if err != nil {
			return nil, err
		}
		return NewPostgres(db), nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
