package yieldvote

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/yieldvote/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressJSON(t *testing.T) {
	addr := NewAddress([]byte("alice"))
	require.NoError(t, addr.Validate())

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.True(t, addr.Equals(got))

	var empty Address
	require.NoError(t, json.Unmarshal([]byte(`""`), &empty))
	assert.Nil(t, empty)
}

func TestParseAddress(t *testing.T) {
	cases := map[string]struct {
		enc     string
		wantErr *errors.Error
	}{
		"valid": {
			enc: "0102030405060708090A0B0C0D0E0F1011121314",
		},
		"lower case is accepted": {
			enc: "0102030405060708090a0b0c0d0e0f1011121314",
		},
		"too short": {
			enc:     "0102",
			wantErr: errors.ErrInput,
		},
		"not hex": {
			enc:     "zz",
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := ParseAddress(tc.enc)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v error, got %+v", tc.wantErr, err)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	a := NewAddress([]byte("a"))
	b := NewAddress([]byte("b"))
	c := NewAddress([]byte("c"))
	list := []Address{a, b}
	assert.Equal(t, 0, IndexOf(list, a))
	assert.Equal(t, 1, IndexOf(list, b))
	assert.Equal(t, -1, IndexOf(list, c))
	assert.Equal(t, -1, IndexOf(nil, c))
}
