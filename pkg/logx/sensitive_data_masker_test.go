package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/junipr-dev/dealscout/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "eBay OAuth tokens",
			input:  []byte(`{"access_token":"eyJhbGciOiJFUzI1NiIsInR5cC","refresh_token":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"access_token":"[MASKED]","refresh_token":"[MASKED]"}`),
		},
		{
			name:   "Device token and email",
			input:  []byte(`{"token": "fcm-ddNq8a1x", "email": "seller@example.com", "platform": "android"}`),
			output: []byte(`{"token": "[MASKED]", "email": "[MASKED]", "platform": "android"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
