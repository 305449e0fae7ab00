package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryMetadata_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		meta    LibraryMetadata
		wantErr string
	}{
		{name: "valid", meta: LibraryMetadata{ModID: "engine_core", ModVersion: "0.0.1"}},
		{name: "v prefix", meta: LibraryMetadata{ModID: "engine_core", ModVersion: "v1.2.3-rc.1"}},
		{name: "empty id", meta: LibraryMetadata{ModVersion: "0.0.1"}, wantErr: "mod_id must not be empty"},
		{name: "colon in id", meta: LibraryMetadata{ModID: "a:b", ModVersion: "0.0.1"}, wantErr: "must not contain"},
		{name: "bad version", meta: LibraryMetadata{ModID: "x", ModVersion: "latest"}, wantErr: "not a semantic version"},
		{name: "empty version", meta: LibraryMetadata{ModID: "x"}, wantErr: "not a semantic version"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.meta.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLibraryMetadata_DisplayName(t *testing.T) {
	assert.Equal(t, "Engine Core External", LibraryMetadata{ModID: "engine_core", ModName: "Engine Core External"}.DisplayName())
	assert.Equal(t, "engine_core", LibraryMetadata{ModID: "engine_core"}.DisplayName())
}

func TestLibraryMetadata_String(t *testing.T) {
	assert.Equal(t, "engine_core@0.0.1", LibraryMetadata{ModID: "engine_core", ModVersion: "0.0.1"}.String())
}
