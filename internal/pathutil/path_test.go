package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParamRegex(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"/invoices/{id}", []string{"id"}},
		{"/accounts/{accountId}/invoices/{invoiceId}", []string{"accountId", "invoiceId"}},
		{"/invoices/query", nil},
		{"{tenant}/invoices", []string{"tenant"}},
		{"/invoices/{id}/pdf", []string{"id"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, m := range PathParamRegex.FindAllStringSubmatch(tt.input, -1) {
				got = append(got, m[1])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
