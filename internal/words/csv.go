package words

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
)

// ReadCsvFile loads a vocabulary from a CSV file whose first column is the
// word. Extra columns are ignored; blank rows are skipped.
func ReadCsvFile(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read input file %s: %w", filePath, err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse file as CSV for %s: %w", filePath, err)
	}

	var list []string
	for _, record := range records {
		if len(record) == 0 || record[0] == "" {
			log.Println("Skipping invalid record: ", record)
			continue
		}
		list = append(list, record[0])
	}

	return list, nil
}
