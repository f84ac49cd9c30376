package reconcile_test

import (
	"testing"

	"lakecircle/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    reconcile.Kind
		wantErr bool
	}{
		{input: "SYNC", want: reconcile.KindSync},
		{input: "sync", want: reconcile.KindSync},
		{input: " DryRun ", want: reconcile.KindDryRun},
		{input: "summarise", want: reconcile.KindSummarise},
		{input: "SUMMARIZE", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := reconcile.ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind_Mutates(t *testing.T) {
	assert.True(t, reconcile.KindSync.Mutates())
	assert.False(t, reconcile.KindDryRun.Mutates())
	assert.False(t, reconcile.KindSummarise.Mutates())
	assert.False(t, reconcile.Kind("OTHER").Mutates())
}

func TestWorkflowFor(t *testing.T) {
	for _, k := range reconcile.Kinds {
		w, err := reconcile.WorkflowFor(k)
		require.NoError(t, err)
		assert.Equal(t, k, w.Kind())
	}

	_, err := reconcile.WorkflowFor("OTHER")
	assert.Error(t, err)
}
