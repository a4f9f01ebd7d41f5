package files

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/xuri/excelize/v2"
)

const (
	tableSampleRows = 5
	tableLabel      = "Dados estruturados (primeiras 5 linhas):"
)

// csvSample renders the header and the first rows of a comma-separated file.
func csvSample(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for len(rows) < tableSampleRows+1 {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		rows = append(rows, rec)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return renderTable(rows), nil
}

// spreadsheetSample renders the header and the first rows of the first sheet.
func spreadsheetSample(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", errors.New("planilha sem abas")
	}
	it, err := f.Rows(sheets[0])
	if err != nil {
		return "", err
	}
	defer it.Close()

	var rows [][]string
	for len(rows) < tableSampleRows+1 && it.Next() {
		cols, err := it.Columns()
		if err != nil {
			return "", err
		}
		rows = append(rows, cols)
	}
	if err := it.Error(); err != nil {
		return "", err
	}
	return renderTable(rows), nil
}

// renderTable lays rows out as an indexed, column-aligned table. rows[0] is
// the header. An empty input renders as "".
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	if width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(tableLabel)
	b.WriteByte('\n')

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := make([]string, width)
	for i := range header {
		if i < len(rows[0]) && strings.TrimSpace(rows[0][i]) != "" {
			header[i] = rows[0][i]
		} else {
			header[i] = "Unnamed: " + strconv.Itoa(i)
		}
	}
	writeRow(tw, "", header)
	for i, r := range rows[1:] {
		cells := make([]string, width)
		copy(cells, r)
		writeRow(tw, strconv.Itoa(i), cells)
	}
	_ = tw.Flush()
	return strings.TrimRight(trimLines(b.String()), "\n")
}

func writeRow(w io.Writer, index string, cells []string) {
	fmt.Fprint(w, index, "\t")
	for _, c := range cells {
		fmt.Fprint(w, strings.NewReplacer("\t", " ", "\n", " ").Replace(c), "\t")
	}
	fmt.Fprintln(w)
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
