package database

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrConditionFailed = errors.New("condition check failed")
)

// Expr is a DynamoDB expression together with its #name and :value placeholders.
// The zero value means "no expression".
type Expr struct {
	Text   string
	Names  map[string]string
	Values map[string]types.AttributeValue
}

func (e Expr) empty() bool {
	return e.Text == ""
}

func (e Expr) text() *string {
	if e.empty() {
		return nil
	}
	return aws.String(e.Text)
}

func mergeNames(exprs ...Expr) map[string]string {
	var out map[string]string
	for _, e := range exprs {
		if len(e.Names) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		maps.Copy(out, e.Names)
	}
	return out
}

func mergeValues(exprs ...Expr) map[string]types.AttributeValue {
	var out map[string]types.AttributeValue
	for _, e := range exprs {
		if len(e.Values) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]types.AttributeValue)
		}
		maps.Copy(out, e.Values)
	}
	return out
}

// AttributeExists guards a write on attr being present.
func AttributeExists(attr string) Expr {
	return Expr{Text: "attribute_exists(#" + attr + ")", Names: map[string]string{"#" + attr: attr}}
}

// AttributeNotExists guards a write on attr being absent.
func AttributeNotExists(attr string) Expr {
	return Expr{Text: "attribute_not_exists(#" + attr + ")", Names: map[string]string{"#" + attr: attr}}
}

func AttrString(value string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: value}
}

func wrap(op, table string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("%s %s: %w", op, table, ErrConditionFailed)
	}
	return fmt.Errorf("%s %s: %w", op, table, err)
}

// PutItem marshals item and writes it, subject to guard.
func (c *DynamoDBClient) PutItem(ctx context.Context, table string, item any, guard Expr) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal %s item: %w", table, err)
	}
	_, err = c.svc.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(table),
		Item:                      av,
		ConditionExpression:       guard.text(),
		ExpressionAttributeNames:  mergeNames(guard),
		ExpressionAttributeValues: mergeValues(guard),
	})
	if err != nil {
		return wrap("put", table, err)
	}
	return nil
}

func (c *DynamoDBClient) GetItem(ctx context.Context, table string, key map[string]types.AttributeValue, out any) error {
	res, err := c.svc.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return wrap("get", table, err)
	}
	if res.Item == nil {
		return fmt.Errorf("%w in %s", ErrItemNotFound, table)
	}
	return attributevalue.UnmarshalMap(res.Item, out)
}

// UpdateItem applies update under guard and unmarshals the new item into out when non-nil.
func (c *DynamoDBClient) UpdateItem(ctx context.Context, table string, key map[string]types.AttributeValue, update, guard Expr, out any) error {
	res, err := c.svc.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		UpdateExpression:          update.text(),
		ConditionExpression:       guard.text(),
		ExpressionAttributeNames:  mergeNames(update, guard),
		ExpressionAttributeValues: mergeValues(update, guard),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return wrap("update", table, err)
	}
	if out == nil {
		return nil
	}
	return attributevalue.UnmarshalMap(res.Attributes, out)
}

func (c *DynamoDBClient) DeleteItem(ctx context.Context, table string, key map[string]types.AttributeValue, guard Expr) error {
	_, err := c.svc.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                 aws.String(table),
		Key:                       key,
		ConditionExpression:       guard.text(),
		ExpressionAttributeNames:  mergeNames(guard),
		ExpressionAttributeValues: mergeValues(guard),
	})
	if err != nil {
		return wrap("delete", table, err)
	}
	return nil
}

// Scan reads every page of table, keeping items that match filter.
func (c *DynamoDBClient) Scan(ctx context.Context, table string, filter Expr) ([]map[string]types.AttributeValue, error) {
	pages := dynamodb.NewScanPaginator(c.svc, &dynamodb.ScanInput{
		TableName:                 aws.String(table),
		FilterExpression:          filter.text(),
		ExpressionAttributeNames:  mergeNames(filter),
		ExpressionAttributeValues: mergeValues(filter),
	})

	var items []map[string]types.AttributeValue
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, wrap("scan", table, err)
		}
		items = append(items, page.Items...)
	}
	return items, nil
}
