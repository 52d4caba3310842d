package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want Filter
	}{
		{"", All},
		{"all", All},
		{"ALL", All},
		{" active ", Active},
		{"Completed", Completed},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	_, err := ParseFilter("done")
	require.Error(t, err)
	assert.Equal(t, "invalid filter: done", err.Error())
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "active", Active.String())
	assert.Equal(t, "completed", Completed.String())
}

func TestFilter_Match(t *testing.T) {
	open := Task{ID: 1, Text: "open"}
	done := Task{ID: 2, Text: "done", Completed: true}

	assert.True(t, All.Match(open))
	assert.True(t, All.Match(done))
	assert.True(t, Active.Match(open))
	assert.False(t, Active.Match(done))
	assert.False(t, Completed.Match(open))
	assert.True(t, Completed.Match(done))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b", CleanText("  a b \n"))
	assert.Equal(t, "", CleanText(" \t "))
	assert.Equal(t, "\u00c5", CleanText("A\u030a"))
}
