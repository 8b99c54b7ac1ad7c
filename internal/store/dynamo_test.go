package store

import (
	"blackarrow-backend/internal/database"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items by id and honours the attribute_exists guards.
type fakeDynamo struct {
	items      map[string]map[string]types.AttributeValue
	lastScan   *dynamodb.ScanInput
	lastUpdate *dynamodb.UpdateItemInput
	scanPages  int
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func keyOf(key map[string]types.AttributeValue) string {
	return key["id"].(*types.AttributeValueMemberS).Value
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return &dynamodb.GetItemOutput{Item: f.items[keyOf(in.Key)]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	id := keyOf(in.Item)
	if _, exists := f.items[id]; exists && aws.ToString(in.ConditionExpression) == "attribute_not_exists(#id)" {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
	}
	f.items[id] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.lastUpdate = in
	id := keyOf(in.Key)
	item, ok := f.items[id]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	for alias, name := range in.ExpressionAttributeNames {
		if name == "id" {
			continue
		}
		item[name] = in.ExpressionAttributeValues[":"+alias[1:]]
	}
	return &dynamodb.UpdateItemOutput{Attributes: item}, nil
}

func (f *fakeDynamo) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	id := keyOf(in.Key)
	if _, ok := f.items[id]; !ok {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan returns every item, one per page, so pagination is exercised.
func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.lastScan = in
	f.scanPages++
	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	sort.Strings(ids)
	idx := 0
	if in.ExclusiveStartKey != nil {
		last := keyOf(in.ExclusiveStartKey)
		for i, id := range ids {
			if id == last {
				idx = i + 1
			}
		}
	}
	out := &dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{f.items[ids[idx]]}}
	if idx+1 < len(ids) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": database.AttrString(ids[idx])}
	}
	return out, nil
}

func newTestDynamo(t *testing.T) (*Dynamo, *fakeDynamo) {
	t.Helper()
	api := newFakeDynamo()
	client, err := database.NewDynamoDBClientWithAPI(api)
	require.NoError(t, err)
	return NewDynamo(client, "test-"), api
}

func TestDynamoInsertGet(t *testing.T) {
	ctx := context.Background()
	d, _ := newTestDynamo(t)

	rec, err := d.Insert(ctx, "leads", Record{"id": "1", "email": "a@example.com", "budget": 1200})
	require.NoError(t, err)
	require.Equal(t, "1", rec.ID())

	got, err := d.Get(ctx, "leads", "1")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", got["email"])
	require.Equal(t, float64(1200), got["budget"])

	_, err = d.Insert(ctx, "leads", Record{"id": "1"})
	require.True(t, errors.Is(err, ErrConflict))

	_, err = d.Get(ctx, "leads", "nope")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestDynamoSelectBuildsFilter(t *testing.T) {
	ctx := context.Background()
	d, api := newTestDynamo(t)
	for _, id := range []string{"b", "a", "c"} {
		_, err := d.Insert(ctx, "posts", Record{"id": id, "published": true})
		require.NoError(t, err)
	}

	got, err := d.Select(ctx, "posts", Filter{"published": true, "region": "uk"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].ID())
	require.Equal(t, 3, api.scanPages)

	require.Equal(t, "test-posts", aws.ToString(api.lastScan.TableName))
	require.Equal(t, "#f0 = :v0 AND #f1 = :v1", aws.ToString(api.lastScan.FilterExpression))
	require.Equal(t, map[string]string{"#f0": "published", "#f1": "region"}, api.lastScan.ExpressionAttributeNames)
	require.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, api.lastScan.ExpressionAttributeValues[":v0"])
}

func TestDynamoUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	d, api := newTestDynamo(t)
	_, err := d.Insert(ctx, "leads", Record{"id": "1", "status": "new"})
	require.NoError(t, err)

	rec, err := d.Update(ctx, "leads", "1", Record{"status": "won"})
	require.NoError(t, err)
	require.Equal(t, "won", rec["status"])
	require.Equal(t, "SET #p0 = :p0", aws.ToString(api.lastUpdate.UpdateExpression))
	require.Equal(t, "attribute_exists(#id)", aws.ToString(api.lastUpdate.ConditionExpression))

	_, err = d.Update(ctx, "leads", "2", Record{"status": "won"})
	require.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, d.Delete(ctx, "leads", "1"))
	require.True(t, errors.Is(d.Delete(ctx, "leads", "1"), ErrNotFound))
}
