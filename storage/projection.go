package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
)

// projectionLevel selects how rich a column set a write attempts. Levels
// only ever narrow: once a table rejects a column set, wider writes are not
// retried for the lifetime of the process.
type projectionLevel int32

const (
	projectionFull projectionLevel = iota
	projectionStandard
	projectionMinimal
)

// projection remembers the widest column set a table has accepted so far.
// Shared across goroutines; narrowing races are harmless because the value
// only moves toward minimal.
type projection struct {
	level atomic.Int32
}

func newProjection() *projection {
	return &projection{}
}

func (p *projection) current() projectionLevel {
	return projectionLevel(p.level.Load())
}

// narrow drops to the next level and reports false when already minimal.
func (p *projection) narrow(from projectionLevel) bool {
	if from >= projectionMinimal {
		return false
	}
	p.level.CompareAndSwap(int32(from), int32(from+1))
	return true
}

// upsertWithProjection writes one entity, re-encoding with a narrower column
// set whenever the table rejects the current one. Non-schema errors abort
// immediately.
func (s *Storage) upsertWithProjection(ctx context.Context, table *aztables.Client, proj *projection, encode func(projectionLevel) (map[string]any, error)) error {
	for {
		level := proj.current()
		ent, err := encode(level)
		if err != nil {
			return err
		}
		data, err := json.Marshal(ent)
		if err != nil {
			return err
		}
		_, err = table.UpsertEntity(ctx, data, &aztables.UpsertEntityOptions{UpdateMode: aztables.UpdateModeReplace})
		if err == nil {
			return nil
		}
		if !isSchemaMismatch(err) || !proj.narrow(level) {
			return err
		}
	}
}

// isSchemaMismatch recognizes the class of 400 responses the table service
// returns when a write carries a property the table cannot accept.
func isSchemaMismatch(err error) bool {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return false
	}
	if respErr.StatusCode != http.StatusBadRequest {
		return false
	}
	switch respErr.ErrorCode {
	case "InvalidInput", "PropertyNameInvalid", "PropertiesNeedValue", "PropertyValueTooLarge", "InvalidValueType":
		return true
	}
	return false
}
