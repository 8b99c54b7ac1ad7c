package store

import (
	"blackarrow-backend/internal/database"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Dynamo stores each table in a DynamoDB table of the same name with
// partition key "id".
type Dynamo struct {
	client *database.DynamoDBClient
	prefix string
}

// NewDynamo prefixes every table name with prefix, e.g. "blackarrow-".
func NewDynamo(client *database.DynamoDBClient, prefix string) *Dynamo {
	return &Dynamo{client: client, prefix: prefix}
}

func (d *Dynamo) tableName(table string) (string, error) {
	if err := validTable(table); err != nil {
		return "", err
	}
	return d.prefix + table, nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{IDField: database.AttrString(id)}
}

func (d *Dynamo) Insert(ctx context.Context, table string, record Record) (Record, error) {
	name, err := d.tableName(table)
	if err != nil {
		return nil, err
	}
	rec, err := prepareInsert(record)
	if err != nil {
		return nil, err
	}

	err = d.client.PutItem(ctx, name, map[string]any(rec), database.AttributeNotExists(IDField))
	if errors.Is(err, database.ErrConditionFailed) {
		return nil, fmt.Errorf("%w: %s/%s", ErrConflict, table, rec.ID())
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// equalityExpression builds "#f0 = :v0 AND ..." over the filter keys in sorted order.
func equalityExpression(filter Filter) (database.Expr, error) {
	if len(filter) == 0 {
		return database.Expr{}, nil
	}
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	names := make(map[string]string, len(keys))
	for i, k := range keys {
		av, err := attributevalue.Marshal(filter[k])
		if err != nil {
			return database.Expr{}, fmt.Errorf("marshal filter %s: %w", k, err)
		}
		nk, vk := fmt.Sprintf("#f%d", i), fmt.Sprintf(":v%d", i)
		parts = append(parts, nk+" = "+vk)
		names[nk] = k
		values[vk] = av
	}
	return database.Expr{Text: strings.Join(parts, " AND "), Names: names, Values: values}, nil
}

func (d *Dynamo) Select(ctx context.Context, table string, filter Filter) ([]Record, error) {
	name, err := d.tableName(table)
	if err != nil {
		return nil, err
	}
	f, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}
	expr, err := equalityExpression(f)
	if err != nil {
		return nil, err
	}

	items, err := d.client.Scan(ctx, name, expr)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s record: %w", table, err)
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (d *Dynamo) Get(ctx context.Context, table, id string) (Record, error) {
	name, err := d.tableName(table)
	if err != nil {
		return nil, err
	}

	var rec Record
	err = d.client.GetItem(ctx, name, idKey(id), &rec)
	if errors.Is(err, database.ErrItemNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Dynamo) Update(ctx context.Context, table, id string, patch Record) (Record, error) {
	name, err := d.tableName(table)
	if err != nil {
		return nil, err
	}
	p, err := preparePatch(patch)
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return d.Get(ctx, table, id)
	}

	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sets := make([]string, 0, len(keys))
	values := make(map[string]types.AttributeValue, len(keys))
	names := make(map[string]string, len(keys))
	for i, k := range keys {
		av, err := attributevalue.Marshal(p[k])
		if err != nil {
			return nil, fmt.Errorf("marshal patch %s: %w", k, err)
		}
		nk, vk := fmt.Sprintf("#p%d", i), fmt.Sprintf(":p%d", i)
		sets = append(sets, nk+" = "+vk)
		names[nk] = k
		values[vk] = av
	}

	var rec Record
	set := database.Expr{Text: "SET " + strings.Join(sets, ", "), Names: names, Values: values}
	err = d.client.UpdateItem(ctx, name, idKey(id), set, database.AttributeExists(IDField), &rec)
	if errors.Is(err, database.ErrConditionFailed) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (d *Dynamo) Delete(ctx context.Context, table, id string) error {
	name, err := d.tableName(table)
	if err != nil {
		return err
	}

	err = d.client.DeleteItem(ctx, name, idKey(id), database.AttributeExists(IDField))
	if errors.Is(err, database.ErrConditionFailed) {
		return fmt.Errorf("%w: %s/%s", ErrNotFound, table, id)
	}
	return err
}
