package store

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store for tests and local development
// (serve --memory). Documents round-trip through bson so struct tags behave
// exactly as they do against Mongo.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]bson.Raw
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]bson.Raw)}
}

func (m *Memory) Get(ctx context.Context, collection, id string, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}
	return bson.Unmarshal(raw, out)
}

func (m *Memory) Set(ctx context.Context, collection, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collections[collection] == nil {
		m.collections[collection] = make(map[string]bson.Raw)
	}
	m.collections[collection][id] = raw
	return nil
}

func (m *Memory) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.collections[collection][id]
	if !ok {
		return ErrNotFound
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}
	for k, v := range fields {
		doc[k] = v
	}

	updated, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m.collections[collection][id] = updated
	return nil
}

func (m *Memory) Query(ctx context.Context, collection, field string, value any, orderBy string, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []bson.M
	for _, raw := range m.collections[collection] {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			return err
		}
		if equal(doc[field], value) {
			matches = append(matches, doc)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		// Descending order.
		return less(matches[j][orderBy], matches[i][orderBy])
	})

	return decodeSlice(matches, out)
}

func equal(got, want any) bool {
	return reflect.DeepEqual(got, want)
}

// less compares the bson-decoded forms the store actually produces for its
// order-by fields: timestamps and strings.
func less(a, b any) bool {
	switch x := a.(type) {
	case primitive.DateTime:
		y, ok := b.(primitive.DateTime)
		return ok && x < y
	case string:
		y, ok := b.(string)
		return ok && x < y
	case int32:
		y, ok := b.(int32)
		return ok && x < y
	case int64:
		y, ok := b.(int64)
		return ok && x < y
	case float64:
		y, ok := b.(float64)
		return ok && x < y
	default:
		return false
	}
}

func decodeSlice(docs []bson.M, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("query result must decode into a slice pointer, got %T", out)
	}

	slice := v.Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(docs))
	elemType := slice.Type().Elem()

	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}

	slice.Set(result)
	return nil
}
