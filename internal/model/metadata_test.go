package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONMapMergeOverwritesAndAdds(t *testing.T) {
	base := JSONMap{"rack": "4", "row": "2"}
	merged := base.Merge(JSONMap{"row": "9", "power": "redundant"})

	assert.Equal(t, JSONMap{"rack": "4", "row": "9", "power": "redundant"}, merged)
}

func TestJSONMapMergeNilValueDeletesKey(t *testing.T) {
	base := JSONMap{"rack": "4", "row": "2"}
	merged := base.Merge(JSONMap{"row": nil})

	assert.Equal(t, JSONMap{"rack": "4"}, merged)
	_, exists := merged["row"]
	assert.False(t, exists)
}

func TestJSONMapMergeDoesNotModifyReceiver(t *testing.T) {
	base := JSONMap{"rack": "4"}
	_ = base.Merge(JSONMap{"rack": nil, "row": "2"})

	assert.Equal(t, JSONMap{"rack": "4"}, base)
}

func TestJSONMapMergeOnNilReceiver(t *testing.T) {
	var base JSONMap
	merged := base.Merge(JSONMap{"rack": "4"})

	assert.Equal(t, JSONMap{"rack": "4"}, merged)
}

func TestJSONMapMarshalNilAsEmptyObject(t *testing.T) {
	var m JSONMap
	b, err := json.Marshal(m)

	assert.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestJSONMapScanRoundTrip(t *testing.T) {
	original := JSONMap{"rack": "4", "ports": float64(48)}
	value, err := original.Value()
	assert.NoError(t, err)

	var scanned JSONMap
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONMapScanNil(t *testing.T) {
	scanned := JSONMap{"stale": true}
	assert.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestJSONMapScanRejectsUnknownType(t *testing.T) {
	var scanned JSONMap
	assert.Error(t, scanned.Scan(42))
}

func TestJSONMapUnmarshalRejectsNonObjects(t *testing.T) {
	for _, payload := range []string{`[1,2,3]`, `"rack 4"`, `42`, `true`} {
		var m JSONMap
		err := json.Unmarshal([]byte(payload), &m)
		assert.ErrorIs(t, err, ErrNotJSONObject, payload)
	}
}

func TestJSONMapUnmarshalObjectAndNull(t *testing.T) {
	var m JSONMap
	assert.NoError(t, json.Unmarshal([]byte(`{"rack":"4"}`), &m))
	assert.Equal(t, JSONMap{"rack": "4"}, m)

	assert.NoError(t, json.Unmarshal([]byte(`null`), &m))
	assert.Nil(t, m)
}
