package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

type testData struct{}

func (testData) Headers() []string { return []string{"TENANT", "PARTNER ID"} }
func (testData) Rows() [][]string {
	return [][]string{
		{"Contoso", "1234567"},
		{"Fabrikam", "-"},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, testData{})

	out := buf.String()
	assert.Contains(t, out, "TENANT")
	assert.Contains(t, out, "PARTNER ID")
	assert.Contains(t, out, "Contoso")
	assert.Contains(t, out, "1234567")
	assert.Contains(t, out, "Fabrikam")
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	KeyValueTable(&buf, [][2]string{
		{"Signed in as:", "admin@contoso.com"},
		{"Home tenant:", "t1"},
	})

	out := buf.String()
	assert.Contains(t, out, "admin@contoso.com")
	assert.Contains(t, out, "Home tenant:")
}
