package statement

import (
	"bytes"
	"encoding/csv"
	"sort"

	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	Render(statement Statement) (string, error)
}

type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) Render(statement Statement) (string, error) {
	data := make([][]string, 0, len(statement.Lines)+len(statement.CategoryTotal)+3)
	data = append(data, []string{"Date", "Counterparty", "Category", "Amount"})
	for _, line := range statement.Lines {
		data = append(data, []string{
			line.Date.Format("02/01/2006"),
			line.Counterparty,
			line.Category,
			line.Amount.StringFixed(2),
		})
	}

	categories := make([]string, 0, len(statement.CategoryTotal))
	for category := range statement.CategoryTotal {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		data = append(data, []string{"", "", category, statement.CategoryTotal[category].StringFixed(2)})
	}
	data = append(data, []string{"", "", "TOTAL", statement.Total.StringFixed(2)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
