package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	input := strings.NewReader("First_Name, Email ,department_code\nAlice,alice@example.com,CS\n\nBob,bob@example.com,MATH\n")

	table, err := Parse("faculty.csv", input)
	require.NoError(t, err)
	require.Equal(t, []string{"first_name", "email", "department_code"}, table.Columns)
	require.Len(t, table.Rows, 2, "blank lines are skipped")
	require.Equal(t, "alice@example.com", table.Rows[0]["email"])
	require.Equal(t, "MATH", table.Rows[1]["department_code"])
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := strings.NewReader("first_name,email\nAlice\n")

	table, err := Parse("upload.csv", input)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "Alice", table.Rows[0]["first_name"])
	require.Equal(t, "", table.Rows[0]["email"], "short rows pad missing cells")
}

func TestParseXLSX(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]string{"First_Name", "Email"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]string{"Alice", "alice@example.com"}))

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf))

	table, err := Parse("faculty.xlsx", &buf)
	require.NoError(t, err)
	require.Equal(t, []string{"first_name", "email"}, table.Columns)
	require.Len(t, table.Rows, 1)
	require.Equal(t, "alice@example.com", table.Rows[0]["email"])
}

func TestParseSniffsWorkbookWithoutExtension(t *testing.T) {
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheet, "A1", &[]string{"email"}))
	require.NoError(t, workbook.SetSheetRow(sheet, "A2", &[]string{"alice@example.com"}))

	var buf bytes.Buffer
	require.NoError(t, workbook.Write(&buf))

	table, err := Parse("upload", &buf)
	require.NoError(t, err)
	require.Equal(t, []string{"email"}, table.Columns)
}

func TestParseEmptyFile(t *testing.T) {
	_, err := Parse("empty.csv", strings.NewReader(""))
	require.Error(t, err)
}

func TestMissingColumns(t *testing.T) {
	table, err := Parse("faculty.csv", strings.NewReader("first_name,email\nAlice,alice@example.com\n"))
	require.NoError(t, err)

	require.Empty(t, table.MissingColumns("first_name", "Email"))
	missing := table.MissingColumns("department_code", "last_name", "email")
	require.Equal(t, []string{"department_code", "last_name"}, missing, "sorted for stable messages")

	require.True(t, table.HasColumn("EMAIL"))
	require.False(t, table.HasColumn("phone"))
}
