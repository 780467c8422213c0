package key

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString_RoundTrip(t *testing.T) {
	t.Parallel()

	conv := String{}
	for _, s := range []string{"", "abc", "0b0f1c1e-3a55-4c3e-9d8e-1f2a3b4c5d6e"} {
		got, err := conv.FromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.Equal(t, s, conv.ToString(got))
	}
}

func TestUUID_RoundTrip(t *testing.T) {
	t.Parallel()

	conv := UUID{}
	id := uuid.New()

	parsed, err := conv.FromString(conv.ToString(id))

	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestUUID_FromStringInvalid(t *testing.T) {
	t.Parallel()

	got, err := UUID{}.FromString("not-a-uuid")

	assert.Error(t, err)
	assert.Equal(t, uuid.Nil, got)
}

func TestInt64_Conversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "positive", input: "42", want: 42},
		{name: "negative", input: "-7", want: -7},
		{name: "zero", input: "0", want: 0},
		{name: "not a number", input: "4x2", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Int64{}.FromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, Int64{}.ToString(got))
		})
	}
}
